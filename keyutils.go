// keyutils.go: Key, IV and salt generation, import/export, zeroization and
// fingerprinting.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
)

// KeySize is the default key size, AES-256.
const KeySize = AES256KeySize

// KeyToBase64 encodes a key as a base64 string.
func KeyToBase64(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

// KeyFromBase64 decodes a base64 string to a key.
//
// Returns ErrBase64Decode if s is not valid standard base64.
func KeyFromBase64(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, wrapError(ErrBase64Decode, err, ErrCodeBase64Decode, "failed to decode base64 key")
	}
	return key, nil
}

// KeyToHex encodes a key as a lowercase hexadecimal string.
func KeyToHex(key []byte) string {
	return hex.EncodeToString(key)
}

// KeyFromHex decodes a hexadecimal string (either case) to a key.
func KeyFromHex(s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, wrapError(ErrHexDecode, err, ErrCodeHexDecode, "failed to decode hex key")
	}
	return key, nil
}

// Zeroize overwrites b with zeros in place.
//
// Example:
//
//	key, _ := crypto.GenerateKey()
//	defer crypto.Zeroize(key)
func Zeroize(b []byte) {
	clearBuffer(b)
}

// GetKeyFingerprint returns a short identifier for a key: the first 8 bytes of
// its SHA-512/256 digest as 16 hex characters, or "" for an empty key.
//
// The fingerprint is meant for logs and cache keys; it does not reveal the key.
func GetKeyFingerprint(key []byte) string {
	if len(key) == 0 {
		return ""
	}
	sum := Sum512_256(key)
	return fmt.Sprintf("%016x", sum[:8])
}

// GenerateKey generates a random 32-byte AES-256 key.
func GenerateKey() ([]byte, error) {
	return GenerateKeySize(KeySize)
}

// GenerateKeySize generates a random AES key of 16, 24 or 32 bytes.
func GenerateKeySize(size int) ([]byte, error) {
	if !validAESKeySize(size) {
		return nil, newError(ErrInvalidKeySize, ErrCodeInvalidKey,
			fmt.Sprintf("AES key must be 16, 24 or 32 bytes (got %d)", size))
	}
	return randomBytes(size, "failed to generate key")
}

// GenerateIV generates a random 16-byte CBC initialization vector.
func GenerateIV() ([]byte, error) {
	return randomBytes(AESBlockSize, "failed to generate IV")
}

// GenerateSalt generates a random salt of size bytes for PBKDF2 or HKDF.
// NIST SP 800-132 asks for at least 16 bytes.
func GenerateSalt(size int) ([]byte, error) {
	if size <= 0 {
		return nil, newError(ErrInvalidKeyLength, ErrCodeKeyLength, "salt size must be positive")
	}
	return randomBytes(size, "failed to generate salt")
}

func randomBytes(n int, msg string) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, wrapError(ErrRandom, err, ErrCodeRandom, msg)
	}
	return b, nil
}

// ValidateKey checks that key is a valid AES-128, AES-192 or AES-256 key.
func ValidateKey(key []byte) error {
	if !validAESKeySize(len(key)) {
		return newError(ErrInvalidKeySize, ErrCodeInvalidKey,
			fmt.Sprintf("key size must be 16, 24 or 32 bytes, got %d", len(key)))
	}
	return nil
}
