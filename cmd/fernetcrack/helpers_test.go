package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/fernetcrack/internal/verify"
)

const (
	// testIterations keeps key derivation fast in tests.
	testIterations = 1000

	// testPassword is the third candidate of the test dictionary
	// (word "ab", symbol "!", digit "0").
	testPassword = "!A0b"

	testPlaintext = "test message"
)

// writeTestConfig writes a configuration file whose target is sealed with
// password and whose quick mode yields the 24 candidates of "ab".
func writeTestConfig(t *testing.T, password string) string {
	t.Helper()

	salt := bytes.Repeat([]byte{0x5a}, verify.SaltSize)
	token, err := verify.Seal(password, salt, testIterations, []byte(testPlaintext))
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	content := fmt.Sprintf(`target:
  salt: %q
  token: %q
  iterations: %d
dictionary:
  words: ["ab", "cd"]
  exclude: []
  quickWord: ab
  symbols: ["!"]
  digits: ["0"]
attack:
  mode: quick
  progressInterval: 5000
`, hex.EncodeToString(salt), string(token), testIterations)

	path := filepath.Join(t.TempDir(), ".fernetcrack")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to create config file: %v", err)
	}
	return path
}

// executeRoot runs the root command with args and returns stdout and stderr.
func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
