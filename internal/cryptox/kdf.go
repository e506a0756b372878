package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the length of every derived key (AES-256).
	KeySize = 32
	// SaltSize is the length of envelope and verifier salts.
	SaltSize = 16

	StoreKeyIterations       = 100_000
	VerifierIterations       = 150_000
	DocumentSecretIterations = 200_000

	documentSaltLabel = "gophnotes:document-salt:"
	documentKeyInfo   = "gophnotes document v1"
)

// Params holds the PBKDF2 iteration counts of the three derivation domains.
// Production code uses DefaultParams; tests may lower the counts.
type Params struct {
	StoreIterations    int
	VerifierIterations int
	DocumentIterations int
}

// DefaultParams returns the production iteration counts.
func DefaultParams() Params {
	return Params{
		StoreIterations:    StoreKeyIterations,
		VerifierIterations: VerifierIterations,
		DocumentIterations: DocumentSecretIterations,
	}
}

// NewSalt returns SaltSize fresh random bytes.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// StoreEncryptionKey derives the credential store key from the configured
// store secret and the salt of the envelope being sealed or opened.
func StoreEncryptionKey(storeSecret, salt []byte, iterations int) []byte {
	return pbkdf2.Key(storeSecret, salt, iterations, KeySize, sha256.New)
}

// PasswordVerifier derives the hash stored in a user record. It is not a
// decryption key for anything.
func PasswordVerifier(password, salt []byte, iterations int) []byte {
	return pbkdf2.Key(password, salt, iterations, KeySize, sha256.New)
}

// CheckPasswordVerifier recomputes the verifier for password and compares it
// with expected in constant time.
func CheckPasswordVerifier(password, salt []byte, iterations int, expected []byte) bool {
	candidate := PasswordVerifier(password, salt, iterations)
	defer common.WipeByteArray(candidate)
	return subtle.ConstantTimeCompare(candidate, expected) == 1
}

// DocumentSalt is the deterministic salt of an account's document secret.
// The same normalized username always yields the same salt, so nothing has
// to be stored.
func DocumentSalt(normalizedUsername string) []byte {
	sum := sha256.Sum256([]byte(documentSaltLabel + normalizedUsername))
	return sum[:SaltSize]
}

// DocumentSecret derives the per-account document secret, base64url encoded.
// It lives only inside a session and is never persisted.
func DocumentSecret(normalizedUsername string, password []byte, iterations int) string {
	key := pbkdf2.Key(password, DocumentSalt(normalizedUsername), iterations, KeySize, sha256.New)
	defer common.WipeByteArray(key)
	return base64.RawURLEncoding.EncodeToString(key)
}

// DocumentKey expands a document secret into the AES key for one envelope,
// bound to that envelope's salt.
func DocumentKey(documentSecret string, salt []byte) ([]byte, error) {
	secret, err := base64.RawURLEncoding.DecodeString(documentSecret)
	if err != nil {
		return nil, fmt.Errorf("decode document secret: %w", err)
	}
	defer common.WipeByteArray(secret)
	if len(secret) != KeySize {
		return nil, fmt.Errorf("document secret must be %d bytes, got %d", KeySize, len(secret))
	}

	key := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, salt, []byte(documentKeyInfo)), key); err != nil {
		return nil, err
	}
	return key, nil
}

// KeySource returns the encryption key for an envelope with the given salt.
type KeySource func(salt []byte) ([]byte, error)

// StoreKeySource binds the store secret to StoreEncryptionKey.
func StoreKeySource(storeSecret []byte, iterations int) KeySource {
	return func(salt []byte) ([]byte, error) {
		return StoreEncryptionKey(storeSecret, salt, iterations), nil
	}
}

// DocumentKeySource binds a session's document secret to DocumentKey.
func DocumentKeySource(documentSecret string) KeySource {
	return func(salt []byte) ([]byte, error) {
		return DocumentKey(documentSecret, salt)
	}
}
