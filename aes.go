// aes.go: AES (FIPS 197) key expansion and round transforms for 128, 192 and
// 256-bit keys.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"fmt"
)

// AES key sizes in bytes.
const (
	AES128KeySize = 16
	AES192KeySize = 24
	AES256KeySize = 32
)

var sbox = [256]byte{
	0x63, 0x7c, 0x77, 0x7b, 0xf2, 0x6b, 0x6f, 0xc5, 0x30, 0x01, 0x67, 0x2b, 0xfe, 0xd7, 0xab, 0x76,
	0xca, 0x82, 0xc9, 0x7d, 0xfa, 0x59, 0x47, 0xf0, 0xad, 0xd4, 0xa2, 0xaf, 0x9c, 0xa4, 0x72, 0xc0,
	0xb7, 0xfd, 0x93, 0x26, 0x36, 0x3f, 0xf7, 0xcc, 0x34, 0xa5, 0xe5, 0xf1, 0x71, 0xd8, 0x31, 0x15,
	0x04, 0xc7, 0x23, 0xc3, 0x18, 0x96, 0x05, 0x9a, 0x07, 0x12, 0x80, 0xe2, 0xeb, 0x27, 0xb2, 0x75,
	0x09, 0x83, 0x2c, 0x1a, 0x1b, 0x6e, 0x5a, 0xa0, 0x52, 0x3b, 0xd6, 0xb3, 0x29, 0xe3, 0x2f, 0x84,
	0x53, 0xd1, 0x00, 0xed, 0x20, 0xfc, 0xb1, 0x5b, 0x6a, 0xcb, 0xbe, 0x39, 0x4a, 0x4c, 0x58, 0xcf,
	0xd0, 0xef, 0xaa, 0xfb, 0x43, 0x4d, 0x33, 0x85, 0x45, 0xf9, 0x02, 0x7f, 0x50, 0x3c, 0x9f, 0xa8,
	0x51, 0xa3, 0x40, 0x8f, 0x92, 0x9d, 0x38, 0xf5, 0xbc, 0xb6, 0xda, 0x21, 0x10, 0xff, 0xf3, 0xd2,
	0xcd, 0x0c, 0x13, 0xec, 0x5f, 0x97, 0x44, 0x17, 0xc4, 0xa7, 0x7e, 0x3d, 0x64, 0x5d, 0x19, 0x73,
	0x60, 0x81, 0x4f, 0xdc, 0x22, 0x2a, 0x90, 0x88, 0x46, 0xee, 0xb8, 0x14, 0xde, 0x5e, 0x0b, 0xdb,
	0xe0, 0x32, 0x3a, 0x0a, 0x49, 0x06, 0x24, 0x5c, 0xc2, 0xd3, 0xac, 0x62, 0x91, 0x95, 0xe4, 0x79,
	0xe7, 0xc8, 0x37, 0x6d, 0x8d, 0xd5, 0x4e, 0xa9, 0x6c, 0x56, 0xf4, 0xea, 0x65, 0x7a, 0xae, 0x08,
	0xba, 0x78, 0x25, 0x2e, 0x1c, 0xa6, 0xb4, 0xc6, 0xe8, 0xdd, 0x74, 0x1f, 0x4b, 0xbd, 0x8b, 0x8a,
	0x70, 0x3e, 0xb5, 0x66, 0x48, 0x03, 0xf6, 0x0e, 0x61, 0x35, 0x57, 0xb9, 0x86, 0xc1, 0x1d, 0x9e,
	0xe1, 0xf8, 0x98, 0x11, 0x69, 0xd9, 0x8e, 0x94, 0x9b, 0x1e, 0x87, 0xe9, 0xce, 0x55, 0x28, 0xdf,
	0x8c, 0xa1, 0x89, 0x0d, 0xbf, 0xe6, 0x42, 0x68, 0x41, 0x99, 0x2d, 0x0f, 0xb0, 0x54, 0xbb, 0x16,
}

var invSbox = [256]byte{
	0x52, 0x09, 0x6a, 0xd5, 0x30, 0x36, 0xa5, 0x38, 0xbf, 0x40, 0xa3, 0x9e, 0x81, 0xf3, 0xd7, 0xfb,
	0x7c, 0xe3, 0x39, 0x82, 0x9b, 0x2f, 0xff, 0x87, 0x34, 0x8e, 0x43, 0x44, 0xc4, 0xde, 0xe9, 0xcb,
	0x54, 0x7b, 0x94, 0x32, 0xa6, 0xc2, 0x23, 0x3d, 0xee, 0x4c, 0x95, 0x0b, 0x42, 0xfa, 0xc3, 0x4e,
	0x08, 0x2e, 0xa1, 0x66, 0x28, 0xd9, 0x24, 0xb2, 0x76, 0x5b, 0xa2, 0x49, 0x6d, 0x8b, 0xd1, 0x25,
	0x72, 0xf8, 0xf6, 0x64, 0x86, 0x68, 0x98, 0x16, 0xd4, 0xa4, 0x5c, 0xcc, 0x5d, 0x65, 0xb6, 0x92,
	0x6c, 0x70, 0x48, 0x50, 0xfd, 0xed, 0xb9, 0xda, 0x5e, 0x15, 0x46, 0x57, 0xa7, 0x8d, 0x9d, 0x84,
	0x90, 0xd8, 0xab, 0x00, 0x8c, 0xbc, 0xd3, 0x0a, 0xf7, 0xe4, 0x58, 0x05, 0xb8, 0xb3, 0x45, 0x06,
	0xd0, 0x2c, 0x1e, 0x8f, 0xca, 0x3f, 0x0f, 0x02, 0xc1, 0xaf, 0xbd, 0x03, 0x01, 0x13, 0x8a, 0x6b,
	0x3a, 0x91, 0x11, 0x41, 0x4f, 0x67, 0xdc, 0xea, 0x97, 0xf2, 0xcf, 0xce, 0xf0, 0xb4, 0xe6, 0x73,
	0x96, 0xac, 0x74, 0x22, 0xe7, 0xad, 0x35, 0x85, 0xe2, 0xf9, 0x37, 0xe8, 0x1c, 0x75, 0xdf, 0x6e,
	0x47, 0xf1, 0x1a, 0x71, 0x1d, 0x29, 0xc5, 0x89, 0x6f, 0xb7, 0x62, 0x0e, 0xaa, 0x18, 0xbe, 0x1b,
	0xfc, 0x56, 0x3e, 0x4b, 0xc6, 0xd2, 0x79, 0x20, 0x9a, 0xdb, 0xc0, 0xfe, 0x78, 0xcd, 0x5a, 0xf4,
	0x1f, 0xdd, 0xa8, 0x33, 0x88, 0x07, 0xc7, 0x31, 0xb1, 0x12, 0x10, 0x59, 0x27, 0x80, 0xec, 0x5f,
	0x60, 0x51, 0x7f, 0xa9, 0x19, 0xb5, 0x4a, 0x0d, 0x2d, 0xe5, 0x7a, 0x9f, 0x93, 0xc9, 0x9c, 0xef,
	0xa0, 0xe0, 0x3b, 0x4d, 0xae, 0x2a, 0xf5, 0xb0, 0xc8, 0xeb, 0xbb, 0x3c, 0x83, 0x53, 0x99, 0x61,
	0x17, 0x2b, 0x04, 0x7e, 0xba, 0x77, 0xd6, 0x26, 0xe1, 0x69, 0x14, 0x63, 0x55, 0x21, 0x0c, 0x7d,
}

// rcon holds the first byte of each round constant word; the other three are zero.
var rcon = [10]byte{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36}

// rounds returns Nr for a key of nk words.
func rounds(nk int) int {
	return nk + 6
}

// validAESKeySize reports whether n is a legal AES key length in bytes.
func validAESKeySize(n int) bool {
	return n == AES128KeySize || n == AES192KeySize || n == AES256KeySize
}

func subWord(w word) word {
	return word{sbox[w[0]], sbox[w[1]], sbox[w[2]], sbox[w[3]]}
}

func rotWord(w word) word {
	return word{w[1], w[2], w[3], w[0]}
}

// expandKey derives the 4*(Nr+1) word key schedule. len(key) must be 16, 24 or 32.
func expandKey(key []byte) []word {
	nk := len(key) / 4
	nr := rounds(nk)
	w := make([]word, 4*(nr+1))
	copy(w, wordsFromKey(key))

	for i := nk; i < len(w); i++ {
		temp := w[i-1]
		switch {
		case i%nk == 0:
			temp = subWord(rotWord(temp))
			temp[0] ^= rcon[i/nk-1]
		case nk > 6 && i%nk == 4:
			temp = subWord(temp)
		}
		for j := 0; j < 4; j++ {
			w[i][j] = w[i-nk][j] ^ temp[j]
		}
	}
	return w
}

// mul multiplies two elements of GF(2^8) modulo x^8 + x^4 + x^3 + x + 1.
func mul(a, b byte) byte {
	var p byte
	for b != 0 {
		if b&1 != 0 {
			p ^= a
		}
		hi := a & 0x80
		a <<= 1
		if hi != 0 {
			a ^= 0x1b
		}
		b >>= 1
	}
	return p
}

func addRoundKey(s *State, w []word, round int) {
	k := w[4*round : 4*round+4]
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			s[r][c] ^= k[c][r]
		}
	}
}

func subBytes(s *State, box *[256]byte) {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			s[r][c] = box[s[r][c]]
		}
	}
}

// shiftRows rotates row r left by r positions.
func shiftRows(s *State) {
	for r := 1; r < 4; r++ {
		row := s[r]
		for c := 0; c < 4; c++ {
			s[r][c] = row[(c+r)%4]
		}
	}
}

// invShiftRows rotates row r right by r positions.
func invShiftRows(s *State) {
	for r := 1; r < 4; r++ {
		row := s[r]
		for c := 0; c < 4; c++ {
			s[r][(c+r)%4] = row[c]
		}
	}
}

func mixColumns(s *State) {
	for c := 0; c < 4; c++ {
		a0, a1, a2, a3 := s[0][c], s[1][c], s[2][c], s[3][c]
		s[0][c] = mul(a0, 2) ^ mul(a1, 3) ^ a2 ^ a3
		s[1][c] = a0 ^ mul(a1, 2) ^ mul(a2, 3) ^ a3
		s[2][c] = a0 ^ a1 ^ mul(a2, 2) ^ mul(a3, 3)
		s[3][c] = mul(a0, 3) ^ a1 ^ a2 ^ mul(a3, 2)
	}
}

func invMixColumns(s *State) {
	for c := 0; c < 4; c++ {
		a0, a1, a2, a3 := s[0][c], s[1][c], s[2][c], s[3][c]
		s[0][c] = mul(a0, 0x0e) ^ mul(a1, 0x0b) ^ mul(a2, 0x0d) ^ mul(a3, 0x09)
		s[1][c] = mul(a0, 0x09) ^ mul(a1, 0x0e) ^ mul(a2, 0x0b) ^ mul(a3, 0x0d)
		s[2][c] = mul(a0, 0x0d) ^ mul(a1, 0x09) ^ mul(a2, 0x0e) ^ mul(a3, 0x0b)
		s[3][c] = mul(a0, 0x0b) ^ mul(a1, 0x0d) ^ mul(a2, 0x09) ^ mul(a3, 0x0e)
	}
}

// cipherState applies the forward cipher to s in place.
func cipherState(s *State, w []word, nr int) {
	addRoundKey(s, w, 0)
	for round := 1; round < nr; round++ {
		subBytes(s, &sbox)
		shiftRows(s)
		mixColumns(s)
		addRoundKey(s, w, round)
	}
	subBytes(s, &sbox)
	shiftRows(s)
	addRoundKey(s, w, nr)
}

// invCipherState undoes cipherState, consuming round keys in reverse order.
func invCipherState(s *State, w []word, nr int) {
	addRoundKey(s, w, nr)
	for round := nr - 1; round > 0; round-- {
		invShiftRows(s)
		subBytes(s, &invSbox)
		addRoundKey(s, w, round)
		invMixColumns(s)
	}
	invShiftRows(s)
	subBytes(s, &invSbox)
	addRoundKey(s, w, 0)
}

// Cipher is an AES block cipher with a precomputed key schedule.
//
// It implements crypto/cipher.Block and is safe for concurrent use: the
// schedule is read-only after NewCipher returns.
type Cipher struct {
	nr int
	w  []word
}

// NewCipher expands key into an AES-128, AES-192 or AES-256 cipher depending
// on its length.
//
// Returns ErrInvalidKeySize if the key is not 16, 24 or 32 bytes.
func NewCipher(key []byte) (*Cipher, error) {
	if !validAESKeySize(len(key)) {
		return nil, newError(ErrInvalidKeySize, ErrCodeInvalidKey,
			fmt.Sprintf("AES key must be 16, 24 or 32 bytes (got %d)", len(key)))
	}
	return &Cipher{nr: rounds(len(key) / 4), w: expandKey(key)}, nil
}

// BlockSize returns the AES block size, 16 bytes.
func (c *Cipher) BlockSize() int { return AESBlockSize }

// Rounds returns the number of rounds for the key size (10, 12 or 14).
func (c *Cipher) Rounds() int { return c.nr }

// Encrypt encrypts the first block of src into dst. Like every cipher.Block it
// panics if either buffer is shorter than a block.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < AESBlockSize || len(dst) < AESBlockSize {
		panic("crypto: input not full block")
	}
	var s State
	loadState(&s, src)
	cipherState(&s, c.w, c.nr)
	storeState(dst, &s)
}

// Decrypt decrypts the first block of src into dst.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < AESBlockSize || len(dst) < AESBlockSize {
		panic("crypto: input not full block")
	}
	var s State
	loadState(&s, src)
	invCipherState(&s, c.w, c.nr)
	storeState(dst, &s)
}
