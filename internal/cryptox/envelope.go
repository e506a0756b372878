// Package cryptox implements the GophNotes encryption core: the authenticated
// envelope codec, its text serialization, and the password-based key
// derivations feeding it.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophnotes/internal/common"
)

const (
	// Version is the only envelope layout understood by this package.
	Version byte = 1

	NonceSize = 12
	TagSize   = 16

	// fixedSize is the length of everything but the ciphertext.
	fixedSize = 1 + SaltSize + NonceSize + TagSize
)

// randReader is the source of nonces.
var randReader io.Reader = rand.Reader

// Envelope is one AES-256-GCM encryption unit.
//
// Salt selects the key (see KeySource), Nonce is fresh for every call to
// Encrypt, and Tag authenticates Ciphertext under empty associated data.
type Envelope struct {
	Version    byte
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
	Tag        []byte
}

// Encrypt seals plaintext with key, recording salt in the envelope.
//
// The key must be KeySize bytes and the salt SaltSize bytes. A new random
// 12-byte nonce is drawn on every call, so encrypting the same plaintext
// twice never yields the same envelope.
//
// Example:
//
//	salt := cryptox.NewSalt()
//	key := cryptox.StoreEncryptionKey(secret, salt, cryptox.StoreKeyIterations)
//	env, err := cryptox.Encrypt([]byte("hello"), key, salt)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Encrypt(plaintext, key, salt []byte) (*Envelope, error) {
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("salt must be %d bytes, got %d", SaltSize, len(salt))
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(randReader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	sealed := aesgcm.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - TagSize

	return &Envelope{
		Version:    Version,
		Salt:       append([]byte(nil), salt...),
		Nonce:      nonce,
		Ciphertext: sealed[:split],
		Tag:        sealed[split:],
	}, nil
}

// Decrypt verifies and opens env with key.
//
// Structural problems (version, field lengths) are reported as
// common.ErrMalformedEnvelope before the cipher runs; a tag mismatch, which
// covers wrong keys and corrupted bytes, is common.ErrAuthenticationFailure.
func Decrypt(env *Envelope, key []byte) ([]byte, error) {
	if err := env.validate(); err != nil {
		return nil, err
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(env.Ciphertext)+TagSize)
	sealed = append(sealed, env.Ciphertext...)
	sealed = append(sealed, env.Tag...)

	plaintext, err := aesgcm.Open(nil, env.Nonce, sealed, nil)
	if err != nil {
		return nil, common.ErrAuthenticationFailure
	}
	return plaintext, nil
}

func (e *Envelope) validate() error {
	switch {
	case e == nil:
		return fmt.Errorf("%w: nil envelope", common.ErrMalformedEnvelope)
	case e.Version != Version:
		return fmt.Errorf("%w: unsupported version %d", common.ErrMalformedEnvelope, e.Version)
	case len(e.Salt) != SaltSize:
		return fmt.Errorf("%w: salt is %d bytes", common.ErrMalformedEnvelope, len(e.Salt))
	case len(e.Nonce) != NonceSize:
		return fmt.Errorf("%w: nonce is %d bytes", common.ErrMalformedEnvelope, len(e.Nonce))
	case len(e.Tag) != TagSize:
		return fmt.Errorf("%w: tag is %d bytes", common.ErrMalformedEnvelope, len(e.Tag))
	}
	return nil
}

var errKeySize = errors.New("encryption key must be 32 bytes")

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, errKeySize
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
