// Package fieldcrypt encrypts personally identifiable fields before they
// are written to the document store.
package fieldcrypt

import (
	"crypto/cipher"
	"crypto/hkdf"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

const keyInfo = "material-rental/pii/v1"

var (
	ErrEmptyKey   = errors.New("fieldcrypt: empty key")
	ErrCiphertext = errors.New("fieldcrypt: malformed ciphertext")
)

type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// AEAD seals values with XChaCha20-Poly1305. Every call uses a fresh random
// nonce, so equal plaintexts produce different ciphertexts.
type AEAD struct {
	aead cipher.AEAD
}

// New derives a 256-bit key from secret with HKDF-SHA256.
func New(secret string) (*AEAD, error) {
	if secret == "" {
		return nil, ErrEmptyKey
	}
	key, err := hkdf.Key(sha256.New, []byte(secret), nil, keyInfo, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("fieldcrypt: derive key: %w", err)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("fieldcrypt: init cipher: %w", err)
	}
	return &AEAD{aead: aead}, nil
}

// Encrypt returns base64(nonce || sealed). The empty string is kept as is so
// optional fields stay empty.
func (a *AEAD) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	nonce := make([]byte, a.aead.NonceSize(), a.aead.NonceSize()+len(plaintext)+a.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("fieldcrypt: nonce: %w", err)
	}
	sealed := a.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (a *AEAD) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrCiphertext
	}
	ns := a.aead.NonceSize()
	if len(raw) < ns+a.aead.Overhead() {
		return "", ErrCiphertext
	}
	plain, err := a.aead.Open(nil, raw[:ns], raw[ns:], nil)
	if err != nil {
		return "", ErrCiphertext
	}
	return string(plain), nil
}
