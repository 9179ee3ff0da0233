package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nao1215/fernetcrack/internal/config"
	"github.com/nao1215/fernetcrack/internal/model"
	"github.com/nao1215/fernetcrack/internal/verify"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// defaultPlaintext is the message sealed into generated test cases.
const defaultPlaintext = "Se leggi questo messaggio, la logica di crittografia funziona!"

var (
	// errNoPassword is returned when no password was given and none can be prompted for.
	errNoPassword = errors.New("password required: use --password or run in a terminal")

	// errPasswordMismatch is returned when the confirmation differs from the password.
	errPasswordMismatch = errors.New("passwords do not match")
)

// NewTestcaseCmd creates the testcase command.
func NewTestcaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "testcase",
		Short: "Generate a controlled target for a known password",
		Long: `Testcase encrypts a message under a key derived from a password you choose,
using a fresh random salt, and prints the salt, the Fernet token and a
configuration snippet that targets them.

Use it to check the attack end to end: pick a password the dictionary
can produce, paste the snippet into .fernetcrack and run 'fernetcrack crack'.
The generated token is decrypted once before it is printed.

Examples:
  # Prompt for the password without echo
  fernetcrack testcase

  # Generate a fast target for a quick test
  fernetcrack testcase --password 'Si!curezza7' --iterations 1000`,
		Args: cobra.NoArgs,
		RunE: runTestcaseCmd,
	}

	cmd.Flags().StringP("password", "p", "",
		"Password to protect the message with (prompted for when omitted)")
	cmd.Flags().String("plaintext", defaultPlaintext,
		"Message to encrypt")
	cmd.Flags().IntP("iterations", "i", config.DefaultIterations,
		"PBKDF2 iteration count")

	return cmd
}

// runTestcaseCmd executes the testcase command.
func runTestcaseCmd(cmd *cobra.Command, _ []string) error {
	password, err := cmd.Flags().GetString("password")
	if err != nil {
		return err
	}
	plaintext, err := cmd.Flags().GetString("plaintext")
	if err != nil {
		return err
	}
	iterations, err := cmd.Flags().GetInt("iterations")
	if err != nil {
		return err
	}

	if password == "" {
		password, err = promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
	}

	return runTestcase(password, []byte(plaintext), iterations, cmd.OutOrStdout())
}

// promptPassword reads a password twice from a terminal without echo.
func promptPassword(in io.Reader, prompt io.Writer) (string, error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) { //nolint:gosec // file descriptors fit in int
		return "", errNoPassword
	}
	fd := int(f.Fd()) //nolint:gosec // file descriptors fit in int

	fmt.Fprint(prompt, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(prompt, "Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if !bytes.Equal(first, second) {
		return "", errPasswordMismatch
	}
	if len(first) == 0 {
		return "", errNoPassword
	}
	return string(first), nil
}

// runTestcase seals plaintext under password, checks the token decrypts
// and prints the target.
func runTestcase(password string, plaintext []byte, iterations int, stdout io.Writer) error {
	if iterations <= 0 {
		return fmt.Errorf("configuration error: %w", config.ErrInvalidIterations)
	}

	salt, err := verify.NewSalt()
	if err != nil {
		return err
	}

	token, err := verify.Seal(password, salt, iterations, plaintext)
	if err != nil {
		return fmt.Errorf("failed to create test case: %w", err)
	}

	target, err := model.NewTarget(salt, token, iterations)
	if err != nil {
		return fmt.Errorf("failed to create test case: %w", err)
	}
	outcome := verify.New(target).Verify(password)
	if !outcome.Match || !bytes.Equal(outcome.Plaintext, plaintext) {
		return errors.New("generated token does not decrypt with its password")
	}

	snippet, err := yaml.Marshal(&config.File{
		Target: config.TargetSection{
			Salt:       hex.EncodeToString(salt),
			Token:      string(token),
			Iterations: iterations,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	fmt.Fprintf(stdout, "Salt (hex):  %s\n", hex.EncodeToString(salt))
	fmt.Fprintf(stdout, "Token:       %s\n", token)
	fmt.Fprintf(stdout, "Iterations:  %d\n", iterations)
	fmt.Fprintln(stdout, "\nAdd this to your .fernetcrack file to attack the test case:")
	fmt.Fprintf(stdout, "\n%s", snippet)

	return nil
}
