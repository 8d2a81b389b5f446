// cbc.go: AES in Cipher Block Chaining mode (NIST SP 800-38A section 6.2)
// with PKCS#7 padding.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"fmt"
)

// PadPKCS7 returns a copy of b extended with n bytes of value n, where
// n = blockSize - len(b)%blockSize. A block-aligned input gains a full block.
//
// blockSize must be in [1, 255].
func PadPKCS7(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	out := make([]byte, len(b)+n)
	copy(out, b)
	for i := len(b); i < len(out); i++ {
		out[i] = byte(n) // #nosec G115 -- n <= blockSize <= 255
	}
	return out
}

// UnpadPKCS7 strips PKCS#7 padding from b and returns the prefix slice.
//
// The padding is rejected with ErrInvalidPadding unless the last byte n is in
// [1, blockSize], n <= len(b), and the last n bytes all equal n.
func UnpadPKCS7(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 {
		return nil, newError(ErrInvalidPadding, ErrCodeInvalidPadding, "cannot unpad empty buffer")
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize || n > len(b) {
		return nil, newError(ErrInvalidPadding, ErrCodeInvalidPadding,
			fmt.Sprintf("padding length %d out of range", n))
	}
	var diff byte
	for _, p := range b[len(b)-n:] {
		diff |= p ^ byte(n) // #nosec G115 -- n <= blockSize
	}
	if diff != 0 {
		return nil, newError(ErrInvalidPadding, ErrCodeInvalidPadding, "padding bytes do not match padding length")
	}
	return b[:len(b)-n], nil
}

func checkCBCParams(key, iv []byte) error {
	if !validAESKeySize(len(key)) {
		return newError(ErrInvalidKeySize, ErrCodeInvalidKey,
			fmt.Sprintf("AES key must be 16, 24 or 32 bytes (got %d)", len(key)))
	}
	if len(iv) != AESBlockSize {
		return newError(ErrInvalidIVSize, ErrCodeInvalidIV,
			fmt.Sprintf("IV must be %d bytes (got %d)", AESBlockSize, len(iv)))
	}
	return nil
}

// EncryptCBC pads plaintext with PKCS#7 and encrypts it with AES-CBC.
//
// Parameters:
//   - plaintext: data to encrypt (may be empty)
//   - key: 16, 24 or 32-byte AES key
//   - iv: 16-byte initialization vector, unpredictable for every message
//
// The ciphertext length is the smallest multiple of 16 strictly greater than
// len(plaintext). CBC provides confidentiality only; authenticate the output
// separately (for example with HMAC) if tampering matters.
//
// Example:
//
//	key, _ := crypto.GenerateKey()
//	iv, _ := crypto.GenerateIV()
//	ciphertext, err := crypto.EncryptCBC([]byte("attack at dawn"), key, iv)
func EncryptCBC(plaintext, key, iv []byte) ([]byte, error) {
	if err := checkCBCParams(key, iv); err != nil {
		return nil, err
	}
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	return c.encryptCBC(plaintext, iv), nil
}

// DecryptCBC decrypts an AES-CBC ciphertext and removes its PKCS#7 padding.
//
// Returns ErrCiphertextLength if the ciphertext is empty or not block aligned,
// and ErrInvalidPadding if the recovered padding is malformed (typically a
// wrong key or IV, or a corrupted ciphertext).
func DecryptCBC(ciphertext, key, iv []byte) ([]byte, error) {
	if err := checkCBCParams(key, iv); err != nil {
		return nil, err
	}
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	return c.decryptCBC(ciphertext, iv)
}

// encryptCBC runs the chaining loop. iv must be 16 bytes.
func (c *Cipher) encryptCBC(plaintext, iv []byte) []byte {
	out := PadPKCS7(plaintext, AESBlockSize)

	var prev, s State
	loadState(&prev, iv)
	for i := 0; i < len(out); i += AESBlockSize {
		loadState(&s, out[i:])
		xorState(&s, &prev)
		cipherState(&s, c.w, c.nr)
		storeState(out[i:], &s)
		prev = s
	}
	return out
}

// decryptCBC runs the inverse chaining loop. iv must be 16 bytes.
func (c *Cipher) decryptCBC(ciphertext, iv []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%AESBlockSize != 0 {
		return nil, newError(ErrCiphertextLength, ErrCodeCipherLength,
			fmt.Sprintf("ciphertext length %d is not a positive multiple of %d", len(ciphertext), AESBlockSize))
	}

	out := make([]byte, len(ciphertext))
	var prev, cur, s State
	loadState(&prev, iv)
	for i := 0; i < len(ciphertext); i += AESBlockSize {
		loadState(&cur, ciphertext[i:])
		s = cur
		invCipherState(&s, c.w, c.nr)
		xorState(&s, &prev)
		storeState(out[i:], &s)
		prev = cur
	}

	plain, err := UnpadPKCS7(out, AESBlockSize)
	if err != nil {
		Zeroize(out)
		return nil, err
	}
	return plain, nil
}
