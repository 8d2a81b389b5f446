// state.go: Conversions between byte buffers and the fixed-shape structures the
// block cipher and the hash engine operate on.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"encoding/binary"
	"fmt"
)

// AESBlockSize is the AES block size in bytes.
const AESBlockSize = 16

// State is the 4x4 byte matrix the AES rounds transform, indexed [row][column].
//
// A 16-byte buffer fills it column by column: byte i lands at row i%4, column i/4.
type State [4][4]byte

// word is one 4-byte column of a key or key schedule.
type word [4]byte

// block is one 1024-bit SHA-512 message block as sixteen big-endian words.
type block [16]uint64

// StateFromBytes converts a 16-byte buffer into a State.
//
// Returns ErrInvalidBlockSize if b is not exactly AESBlockSize bytes long.
func StateFromBytes(b []byte) (State, error) {
	var s State
	if len(b) != AESBlockSize {
		return s, newError(ErrInvalidBlockSize, ErrCodeInvalidBlock,
			fmt.Sprintf("state requires %d bytes, got %d", AESBlockSize, len(b)))
	}
	loadState(&s, b)
	return s, nil
}

// Bytes serialises the state by reading columns top to bottom, left to right.
func (s *State) Bytes() [AESBlockSize]byte {
	var out [AESBlockSize]byte
	storeState(out[:], s)
	return out
}

// loadState fills s from b. b must hold at least 16 bytes.
func loadState(s *State, b []byte) {
	_ = b[15]
	for i := 0; i < AESBlockSize; i++ {
		s[i%4][i/4] = b[i]
	}
}

// storeState writes s into dst. dst must hold at least 16 bytes.
func storeState(dst []byte, s *State) {
	_ = dst[15]
	for i := 0; i < AESBlockSize; i++ {
		dst[i] = s[i%4][i/4]
	}
}

// xorState sets s to s XOR o.
func xorState(s *State, o *State) {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			s[r][c] ^= o[r][c]
		}
	}
}

// loadBlock reads 128 bytes of b as sixteen big-endian 64-bit words.
func loadBlock(blk *block, b []byte) {
	_ = b[BlockSize512-1]
	for j := range blk {
		blk[j] = binary.BigEndian.Uint64(b[8*j:])
	}
}

// wordsFromKey splits an AES key into 4-byte words.
func wordsFromKey(key []byte) []word {
	w := make([]word, len(key)/4)
	for i := range w {
		copy(w[i][:], key[4*i:4*i+4])
	}
	return w
}
