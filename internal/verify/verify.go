package verify

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/nao1215/fernetcrack/internal/model"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeyLength is the derived key length in bytes (a Fernet key is 32 bytes).
	KeyLength = 32

	// SaltSize is the salt length used when generating controlled targets.
	SaltSize = 16

	// noTTL disables Fernet's token age check: tokens are accepted
	// regardless of the timestamp they carry.
	noTTL = -1 * time.Second

	// Fernet token layout: version | timestamp | IV | ciphertext | HMAC.
	tokenVersion   = 0x80
	minTokenLength = 1 + 8 + 16 + 16 + 32
)

// Outcome is the binary result of verifying one candidate.
type Outcome struct {
	// Match is true when the candidate decrypted the token.
	Match bool

	// Plaintext is the recovered message when Match is true.
	Plaintext []byte
}

// Verifier checks candidates against one immutable Target.
// It holds no mutable state and is safe for concurrent use.
type Verifier struct {
	salt       []byte
	ciphertext []byte
	iterations int

	// wellFormed is false when the token cannot be a Fernet token at all;
	// every candidate is then a non-match.
	wellFormed bool
}

// New creates a Verifier for the given target.
func New(target *model.Target) *Verifier {
	ciphertext := target.Ciphertext()
	return &Verifier{
		salt:       target.Salt(),
		ciphertext: ciphertext,
		iterations: target.Iterations(),
		wellFormed: WellFormed(ciphertext),
	}
}

// WellFormed reports whether token has the structure of a Fernet token:
// URL-safe base64, the version byte, and room for IV, one block and HMAC.
func WellFormed(token []byte) bool {
	raw, err := base64.URLEncoding.DecodeString(string(token))
	if err != nil {
		return false
	}
	return len(raw) >= minTokenLength && raw[0] == tokenVersion && (len(raw)-minTokenLength)%16 == 0
}

// Verify derives a key from the candidate and attempts authenticated
// decryption. Any failure, including a malformed token, is a non-match.
func (v *Verifier) Verify(candidate string) Outcome {
	if !v.wellFormed {
		return Outcome{}
	}

	key, err := FernetKey(DeriveKey([]byte(candidate), v.salt, v.iterations))
	if err != nil {
		return Outcome{}
	}

	plaintext := fernet.VerifyAndDecrypt(v.ciphertext, noTTL, []*fernet.Key{key})
	if plaintext == nil {
		return Outcome{}
	}
	return Outcome{Match: true, Plaintext: plaintext}
}

// DeriveKey runs PBKDF2-HMAC-SHA256 and returns KeyLength bytes.
func DeriveKey(password, salt []byte, iterations int) []byte {
	return pbkdf2.Key(password, salt, iterations, KeyLength, sha256.New)
}

// FernetKey encodes derived key material the way Fernet keys are
// distributed (URL-safe base64) and decodes it into a fernet.Key.
func FernetKey(derived []byte) (*fernet.Key, error) {
	encoded := base64.URLEncoding.EncodeToString(derived)
	key, err := fernet.DecodeKey(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid fernet key: %w", err)
	}
	return key, nil
}

// Seal encrypts plaintext under the key derived from password, producing a
// Fernet token that Verify accepts for that password.
func Seal(password string, salt []byte, iterations int, plaintext []byte) ([]byte, error) {
	if len(salt) == 0 {
		return nil, model.ErrEmptySalt
	}
	if iterations <= 0 {
		return nil, model.ErrInvalidIterations
	}

	key, err := FernetKey(DeriveKey([]byte(password), salt, iterations))
	if err != nil {
		return nil, err
	}

	token, err := fernet.EncryptAndSign(plaintext, key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt plaintext: %w", err)
	}
	return token, nil
}

// NewSalt returns SaltSize random bytes.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}
