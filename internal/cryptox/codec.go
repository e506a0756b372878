package cryptox

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/common"
)

// Domain identifies what an envelope protects. Each domain has its own text
// header, so a blob written for one domain is rejected by the other.
type Domain int

const (
	DomainDocument Domain = iota + 1
	DomainCredentialStore
)

// Header returns the ASCII prefix of serialized envelopes of domain d.
func (d Domain) Header() string {
	switch d {
	case DomainDocument:
		return common.AppName + ":DOC:"
	case DomainCredentialStore:
		return common.AppName + ":STORE:"
	}
	return ""
}

func (d Domain) String() string {
	switch d {
	case DomainDocument:
		return "document"
	case DomainCredentialStore:
		return "credential-store"
	}
	return fmt.Sprintf("domain(%d)", int(d))
}

// HasHeader reports whether blob starts with the header of domain d.
func HasHeader(d Domain, blob []byte) bool {
	h := d.Header()
	return h != "" && bytes.HasPrefix(blob, []byte(h))
}

// Serialize encodes env as text: the domain header followed by the unpadded
// base64url form of version || salt || nonce || tag || ciphertext.
func Serialize(d Domain, env *Envelope) (string, error) {
	header := d.Header()
	if header == "" {
		return "", fmt.Errorf("unknown envelope domain %d", int(d))
	}
	if err := env.validate(); err != nil {
		return "", err
	}

	raw := make([]byte, 0, fixedSize+len(env.Ciphertext))
	raw = append(raw, env.Version)
	raw = append(raw, env.Salt...)
	raw = append(raw, env.Nonce...)
	raw = append(raw, env.Tag...)
	raw = append(raw, env.Ciphertext...)

	return header + base64.RawURLEncoding.EncodeToString(raw), nil
}

// Deserialize is the inverse of Serialize. Any header mismatch, decode error,
// non-canonical encoding or short blob fails with common.ErrMalformedEnvelope.
// Trailing whitespace (an editor's final newline) is ignored.
func Deserialize(d Domain, blob string) (*Envelope, error) {
	header := d.Header()
	if header == "" || !strings.HasPrefix(blob, header) {
		return nil, fmt.Errorf("%w: missing %s header", common.ErrMalformedEnvelope, d)
	}

	encoded := strings.TrimRight(blob[len(header):], " \t\r\n")
	raw, err := base64.RawURLEncoding.Strict().DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedEnvelope, err)
	}
	if len(raw) < fixedSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the fixed fields", common.ErrMalformedEnvelope, len(raw))
	}

	env := &Envelope{Version: raw[0]}
	off := 1
	env.Salt, off = raw[off:off+SaltSize], off+SaltSize
	env.Nonce, off = raw[off:off+NonceSize], off+NonceSize
	env.Tag, off = raw[off:off+TagSize], off+TagSize
	env.Ciphertext = raw[off:]

	if err := env.validate(); err != nil {
		return nil, err
	}
	return env, nil
}

// Seal encrypts plaintext under a fresh salt and the key keys returns for it,
// then serializes the envelope for domain d.
func Seal(d Domain, plaintext []byte, keys KeySource) (string, error) {
	salt := NewSalt()
	key, err := keys(salt)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(key)

	env, err := Encrypt(plaintext, key, salt)
	if err != nil {
		return "", err
	}
	return Serialize(d, env)
}

// Open deserializes blob for domain d and decrypts it with the key keys
// returns for the envelope's salt.
func Open(d Domain, blob string, keys KeySource) ([]byte, error) {
	env, err := Deserialize(d, blob)
	if err != nil {
		return nil, err
	}
	key, err := keys(env.Salt)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(key)

	return Decrypt(env, key)
}

// SealJSON marshals v to JSON and seals it for domain d.
func SealJSON(d Domain, v any, keys KeySource) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(plaintext)
	return Seal(d, plaintext, keys)
}

// OpenJSON opens blob and unmarshals the plaintext JSON into v.
func OpenJSON(d Domain, blob string, keys KeySource, v any) error {
	plaintext, err := Open(d, blob, keys)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(plaintext)
	return json.Unmarshal(plaintext, v)
}
