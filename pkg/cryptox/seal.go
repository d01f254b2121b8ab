package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

var (
	ErrEmptySecret = errors.New("cryptox: empty secret")
	ErrOpen        = errors.New("cryptox: unable to open sealed data")
)

// Sealer provides authenticated encryption (AES-256-GCM) under a key derived
// from a caller supplied secret with HKDF-SHA256. The info label binds the
// derived key to one purpose, so the same secret can sign tokens and seal
// payloads without the two keys ever being equal.
//
// Sealed layout: [12-byte nonce][ciphertext][16-byte tag].
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives a 32-byte key from secret and info.
func NewSealer(secret []byte, info string) (*Sealer, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("cryptox: derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create GCM: %w", err)
	}

	return &Sealer{aead: gcm}, nil
}

// Seal encrypts plaintext and authenticates it together with aad. A random
// nonce is drawn per call.
func (s *Sealer) Seal(plaintext, aad []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("cryptox: generate nonce: %w", err)
	}

	// gcm.Seal appends ciphertext and tag to the nonce
	return s.aead.Seal(nonce, nonce, plaintext, aad), nil
}

// Open reverses Seal. Any tampering with the sealed bytes or a different aad
// yields ErrOpen.
func (s *Sealer) Open(sealed, aad []byte) ([]byte, error) {
	nonceSize := s.aead.NonceSize()
	if len(sealed) < nonceSize+s.aead.Overhead() {
		return nil, ErrOpen
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, ErrOpen
	}
	return plaintext, nil
}

// SealString is Seal for string values, returning base64url without padding
// so the result is safe inside JWT claims and URLs.
func (s *Sealer) SealString(plaintext, aad string) (string, error) {
	sealed, err := s.Seal([]byte(plaintext), []byte(aad))
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// OpenString reverses SealString.
func (s *Sealer) OpenString(sealed, aad string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", ErrOpen
	}
	plaintext, err := s.Open(raw, []byte(aad))
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
