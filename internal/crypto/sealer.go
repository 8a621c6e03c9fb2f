// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto seals cached credentials with a key derived from a
// user-supplied secret.
//
// Scheme:
//
//	KEY    = Argon2id(secret, salt)            32 bytes
//	sealed = "v1:" + base64(nonce ‖ AES-256-GCM(KEY, nonce, plaintext))
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	sealedPrefix = "v1:"
	saltSize     = 16
)

var (
	ErrEmptySecret = errors.New("empty secret")
	ErrShortSalt   = errors.New("salt is too short")
	ErrNotSealed   = errors.New("value is not sealed")
	ErrOpenFailed  = errors.New("cannot open sealed value")
)

type aeadSealer struct {
	aead cipher.AEAD
	rand io.Reader
}

// argon2id tuning: time cost 1, 64 MiB, 4 lanes, 256-bit key.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// NewSealer derives the sealing key from secret and salt. The key is
// derived once per sealer.
func NewSealer(secret string, salt []byte) (Sealer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if len(salt) < 8 {
		return nil, ErrShortSalt
	}

	key := argon2.IDKey([]byte(secret), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &aeadSealer{aead: gcm, rand: rand.Reader}, nil
}

// SaltFor returns a stable salt for scope, so the same secret opens the
// same cache across runs without storing the salt.
func SaltFor(scope string) []byte {
	sum := sha256.Sum256([]byte("go-cloud-sync/token-cache\x00" + scope))
	return sum[:saltSize]
}

func (s *aeadSealer) Seal(plaintext []byte) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(s.rand, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	blob := s.aead.Seal(nonce, nonce, plaintext, nil)
	return sealedPrefix + base64.StdEncoding.EncodeToString(blob), nil
}

func (s *aeadSealer) Open(sealed string) ([]byte, error) {
	encoded, ok := strings.CutPrefix(sealed, sealedPrefix)
	if !ok {
		return nil, ErrNotSealed
	}

	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %w", ErrNotSealed, err)
	}

	nonceSize := s.aead.NonceSize()
	if len(blob) < nonceSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrOpenFailed)
	}

	plaintext, err := s.aead.Open(nil, blob[:nonceSize], blob[nonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}
	return plaintext, nil
}
