// encryption.go: Convenience AES-CBC encryption with a random IV and base64
// output.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"sync"
)

// Expanded key schedules cached by key digest, so repeated calls with the
// same key skip key expansion.
var (
	cipherCacheMu sync.RWMutex
	cipherCache   = make(map[[Size512256]byte]*Cipher)
)

// maxCachedCiphers bounds the schedule cache; it is flushed when full.
const maxCachedCiphers = 1024

// getCachedCipher returns the cached cipher for key, creating it if necessary.
func getCachedCipher(key []byte) (*Cipher, error) {
	id := Sum512_256(key)

	cipherCacheMu.RLock()
	if c, ok := cipherCache[id]; ok {
		cipherCacheMu.RUnlock()
		return c, nil
	}
	cipherCacheMu.RUnlock()

	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}

	cipherCacheMu.Lock()
	if len(cipherCache) >= maxCachedCiphers {
		cipherCache = make(map[[Size512256]byte]*Cipher)
	}
	cipherCache[id] = c
	cipherCacheMu.Unlock()

	return c, nil
}

// EncryptBytes encrypts plaintext with AES-CBC under a fresh random IV.
//
// The returned string is base64(IV || ciphertext). The key may be 16, 24 or 32
// bytes. The output is not authenticated.
//
// Example:
//
//	key, _ := crypto.GenerateKey()
//	ciphertext, err := crypto.EncryptBytes([]byte("sensitive binary data"), key)
//	if err != nil {
//		log.Fatal(err)
//	}
func EncryptBytes(plaintext []byte, key []byte) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}

	c, err := getCachedCipher(key)
	if err != nil {
		return "", err
	}

	ivBuffer := getBuffer(AESBlockSize)
	defer putBuffer(ivBuffer)
	iv := *ivBuffer
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", wrapError(ErrRandom, err, ErrCodeRandom, "failed to generate IV")
	}

	ciphertext := c.encryptCBC(plaintext, iv)

	out := getDynamicBuffer()
	defer func() { putDynamicBuffer(out) }()
	out = append(out, iv...)
	out = append(out, ciphertext...)
	return base64.StdEncoding.EncodeToString(out), nil
}

// DecryptBytes reverses EncryptBytes.
//
// The function will return an error if:
//   - The key size is incorrect
//   - The base64 decoding fails
//   - The payload is shorter than an IV plus one block or not block aligned
//   - The padding is invalid (wrong key or corrupted data)
func DecryptBytes(encryptedText string, key []byte) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	raw, err := base64.StdEncoding.DecodeString(encryptedText)
	if err != nil {
		return nil, wrapError(ErrBase64Decode, err, ErrCodeBase64Decode, "failed to decode base64")
	}
	if len(raw) < 2*AESBlockSize {
		return nil, newError(ErrCiphertextLength, ErrCodeCipherLength,
			fmt.Sprintf("payload of %d bytes cannot hold an IV and a block", len(raw)))
	}

	c, err := getCachedCipher(key)
	if err != nil {
		return nil, err
	}
	return c.decryptCBC(raw[AESBlockSize:], raw[:AESBlockSize])
}

// Encrypt is EncryptBytes for strings.
func Encrypt(plaintext string, key []byte) (string, error) {
	return EncryptBytes([]byte(plaintext), key)
}

// Decrypt is DecryptBytes for strings.
func Decrypt(encryptedText string, key []byte) (string, error) {
	plaintext, err := DecryptBytes(encryptedText, key)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
