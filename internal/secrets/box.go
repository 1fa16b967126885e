// Package secrets encrypts per-shop catalog access tokens before they hit
// the database.
package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

var ErrDecrypt = errors.New("secrets: cannot decrypt")

type Box struct {
	key [32]byte
}

// NewBox parses a 64-char hex key. An empty key yields a zero key, which is
// fine for tests and dev but must not ship.
func NewBox(hexKey string) (*Box, error) {
	b := &Box{}
	if hexKey == "" {
		return b, nil
	}
	raw, err := hex.DecodeString(hexKey)
	if err != nil || len(raw) != 32 {
		return nil, errors.New("secrets: SECRET_KEY must be 64 hex chars")
	}
	copy(b.key[:], raw)
	return b, nil
}

// Seal encrypts plaintext with a fresh random nonce prepended to the output.
func (b *Box) Seal(plaintext string) ([]byte, error) {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, err
	}
	return secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &b.key), nil
}

func (b *Box) Open(ciphertext []byte) (string, error) {
	if len(ciphertext) < 24 {
		return "", ErrDecrypt
	}
	var nonce [24]byte
	copy(nonce[:], ciphertext[:24])
	out, ok := secretbox.Open(nil, ciphertext[24:], &nonce, &b.key)
	if !ok {
		return "", ErrDecrypt
	}
	return string(out), nil
}
