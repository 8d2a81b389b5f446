// aes_test.go: Known-answer and property tests for the AES round engine.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"bytes"
	"crypto/aes"
	"encoding/hex"
	"errors"
	"math/rand"
	"testing"
)

func mustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// FIPS 197 Appendix C example vectors
func TestCipher_FIPS197AppendixC(t *testing.T) {
	plaintext := mustDecodeHex("00112233445566778899aabbccddeeff")
	tests := []struct {
		name   string
		key    string
		rounds int
		want   string
	}{
		{"AES-128", "000102030405060708090a0b0c0d0e0f", 10, "69c4e0d86a7b0430d8cdb78070b4c55a"},
		{"AES-192", "000102030405060708090a0b0c0d0e0f1011121314151617", 12, "dda97ca4864cdfe06eaf70a0ec0d7191"},
		{"AES-256", "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f", 14, "8ea2b7ca516745bfeafc49904b496089"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCipher(mustDecodeHex(tt.key))
			if err != nil {
				t.Fatalf("NewCipher() failed: %v", err)
			}
			if c.Rounds() != tt.rounds {
				t.Errorf("Rounds() = %d, want %d", c.Rounds(), tt.rounds)
			}

			got := make([]byte, AESBlockSize)
			c.Encrypt(got, plaintext)
			if want := mustDecodeHex(tt.want); !bytes.Equal(got, want) {
				t.Errorf("Encrypt() failed\ngot:  %x\nwant: %x", got, want)
			}

			back := make([]byte, AESBlockSize)
			c.Decrypt(back, got)
			if !bytes.Equal(back, plaintext) {
				t.Errorf("Decrypt() failed\ngot:  %x\nwant: %x", back, plaintext)
			}
		})
	}
}

// FIPS 197 Appendix A key expansion examples
func TestExpandKey_FIPS197AppendixA(t *testing.T) {
	tests := []struct {
		key         string
		length      int
		firstIdx    int
		first, last string
	}{
		{"2b7e151628aed2a6abf7158809cf4f3c", 44, 4, "a0fafe17", "b6630ca6"},
		{"8e73b0f7da0e6452c810f32b809079e562f8ead2522c6b7b", 52, 6, "fe0c91f7", "01002202"},
		{"603deb1015ca71be2b73aef0857d77811f352c073b6108d72d9810a30914dff4", 60, 8, "9ba35411", "706c631e"},
	}

	for _, tt := range tests {
		w := expandKey(mustDecodeHex(tt.key))
		if len(w) != tt.length {
			t.Fatalf("expandKey(%s) produced %d words, want %d", tt.key, len(w), tt.length)
		}
		if got := hex.EncodeToString(w[tt.firstIdx][:]); got != tt.first {
			t.Errorf("w[%d] = %s, want %s", tt.firstIdx, got, tt.first)
		}
		if got := hex.EncodeToString(w[len(w)-1][:]); got != tt.last {
			t.Errorf("w[%d] = %s, want %s", len(w)-1, got, tt.last)
		}
	}
}

func TestSbox_InverseTable(t *testing.T) {
	for i := 0; i < 256; i++ {
		if got := invSbox[sbox[i]]; got != byte(i) {
			t.Fatalf("invSbox[sbox[%#02x]] = %#02x", i, got)
		}
	}
}

func TestMul_GF256(t *testing.T) {
	// FIPS 197 section 4.2: {57} * {83} = {c1}, {57} * {13} = {fe}
	if got := mul(0x57, 0x83); got != 0xc1 {
		t.Errorf("mul(0x57, 0x83) = %#02x, want 0xc1", got)
	}
	if got := mul(0x57, 0x13); got != 0xfe {
		t.Errorf("mul(0x57, 0x13) = %#02x, want 0xfe", got)
	}
}

func TestRoundSteps_AreInverses(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	buf := make([]byte, AESBlockSize)
	for n := 0; n < 100; n++ {
		rng.Read(buf)
		orig, _ := StateFromBytes(buf)

		s := orig
		shiftRows(&s)
		invShiftRows(&s)
		if s != orig {
			t.Fatalf("invShiftRows does not undo shiftRows for %x", buf)
		}

		mixColumns(&s)
		invMixColumns(&s)
		if s != orig {
			t.Fatalf("invMixColumns does not undo mixColumns for %x", buf)
		}
	}
}

func TestShiftRows_RotatesLeftByRow(t *testing.T) {
	s, _ := StateFromBytes([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15})
	shiftRows(&s)
	want := State{
		{0, 4, 8, 12},
		{5, 9, 13, 1},
		{10, 14, 2, 6},
		{15, 3, 7, 11},
	}
	if s != want {
		t.Errorf("shiftRows() = %v, want %v", s, want)
	}
}

// Cross-check the round engine against the standard library for random keys.
func TestCipher_MatchesStandardLibrary(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, size := range []int{AES128KeySize, AES192KeySize, AES256KeySize} {
		for n := 0; n < 50; n++ {
			key := make([]byte, size)
			src := make([]byte, AESBlockSize)
			rng.Read(key)
			rng.Read(src)

			ours, err := NewCipher(key)
			if err != nil {
				t.Fatalf("NewCipher() failed: %v", err)
			}
			ref, err := aes.NewCipher(key)
			if err != nil {
				t.Fatalf("aes.NewCipher() failed: %v", err)
			}

			got, want := make([]byte, AESBlockSize), make([]byte, AESBlockSize)
			ours.Encrypt(got, src)
			ref.Encrypt(want, src)
			if !bytes.Equal(got, want) {
				t.Fatalf("Encrypt mismatch for key %x\ngot:  %x\nwant: %x", key, got, want)
			}

			ours.Decrypt(got, src)
			ref.Decrypt(want, src)
			if !bytes.Equal(got, want) {
				t.Fatalf("Decrypt mismatch for key %x\ngot:  %x\nwant: %x", key, got, want)
			}
		}
	}
}

func TestNewCipher_InvalidKeySize(t *testing.T) {
	for _, n := range []int{0, 8, 15, 17, 20, 31, 33, 64} {
		c, err := NewCipher(make([]byte, n))
		if err == nil {
			t.Errorf("NewCipher() with %d-byte key should fail", n)
		}
		if !errors.Is(err, ErrInvalidKeySize) {
			t.Errorf("NewCipher() error = %v, want ErrInvalidKeySize", err)
		}
		if c != nil {
			t.Errorf("NewCipher() returned a cipher for %d-byte key", n)
		}
	}
}

func TestCipher_PanicsOnShortBlock(t *testing.T) {
	c, _ := NewCipher(make([]byte, AES128KeySize))
	defer func() {
		if recover() == nil {
			t.Error("Encrypt() with a short block should panic")
		}
	}()
	c.Encrypt(make([]byte, AESBlockSize), make([]byte, 8))
}
