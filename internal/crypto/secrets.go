// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	saltSize = 16
)

// secretService is the private implementation of [SecretService].
type secretService struct {
	passphrase []byte

	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewSecretService constructs a [SecretService] keyed by passphrase, with
// the Argon2id parameters recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewSecretService(passphrase string) SecretService {
	return &secretService{
		passphrase:   []byte(passphrase),
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
	}
}

// NewSecretServiceFromFile reads the passphrase from keyFilePath (trailing
// whitespace stripped) and constructs a [SecretService] with it. Returns an
// error if the file cannot be read or is empty.
func NewSecretServiceFromFile(keyFilePath string) (SecretService, error) {
	raw, err := os.ReadFile(keyFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading secrets key file: %w", err)
	}

	passphrase := strings.TrimSpace(string(raw))
	if passphrase == "" {
		return nil, fmt.Errorf("secrets key file %q is empty", keyFilePath)
	}

	return NewSecretService(passphrase), nil
}

// Encrypt implements [SecretService]. It generates a fresh random salt and
// nonce, derives the AES key from the passphrase with Argon2id, seals the
// plaintext with AES-256-GCM, and returns base64(salt ‖ nonce ‖ ciphertext).
func (s *secretService) Encrypt(plaintext string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	gcm, err := s.cipherFor(salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)

	blob := make([]byte, 0, len(salt)+len(nonce)+len(sealed))
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = append(blob, sealed...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [SecretService]. It base64-decodes the blob, splits out
// the salt and nonce, re-derives the AES key, and opens the ciphertext.
// An authentication error almost always means the key file on this host
// does not match the one the settings file was encrypted with.
func (s *secretService) Decrypt(ciphertext string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	if len(blob) < saltSize {
		return "", fmt.Errorf("ciphertext too short")
	}
	salt, rest := blob[:saltSize], blob[saltSize:]

	gcm, err := s.cipherFor(salt)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(rest) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}
	nonce, sealed := rest[:nonceSize], rest[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("decryption failed: %w", err)
	}

	return string(plaintext), nil
}

// cipherFor derives the AES-256 key for salt via Argon2id and returns the
// ready AEAD.
func (s *secretService) cipherFor(salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(
		s.passphrase,
		salt,
		s.argonTime,
		s.argonMemory,
		s.argonThreads,
		s.argonKeyLen,
	)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
