// sha512.go: The SHA-512 compression engine (FIPS 180-4) and its four output
// variants: SHA-512, SHA-384, SHA-512/224 and SHA-512/256.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// Mode selects a member of the SHA-512 family. The zero value is ModeSHA512.
type Mode int

const (
	ModeSHA512     Mode = iota // 64-byte digest
	ModeSHA384                 // 48-byte digest
	ModeSHA512_224             // 28-byte digest
	ModeSHA512_256             // 32-byte digest
)

// Digest sizes in bytes.
const (
	Size512    = 64
	Size384    = 48
	Size512224 = 28
	Size512256 = 32

	// BlockSize512 is the block size shared by every SHA-512 variant.
	BlockSize512 = 128
)

// initial hash values, FIPS 180-4 sections 5.3.4 to 5.3.6.
var initialHash = [4][8]uint64{
	ModeSHA512: {
		0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
		0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
	},
	ModeSHA384: {
		0xcbbb9d5dc1059ed8, 0x629a292a367cd507, 0x9159015a3070dd17, 0x152fecd8f70e5939,
		0x67332667ffc00b31, 0x8eb44a8768581511, 0xdb0c2e0d64f98fa7, 0x47b5481dbefa4fa4,
	},
	ModeSHA512_224: {
		0x8c3d37c819544da2, 0x73e1996689dcd4d6, 0x1dfab7ae32ff9c82, 0x679dd514582f9fcf,
		0x0f6d2b697bd44da8, 0x77e36f7304c48942, 0x3f9d85a86a1d36c8, 0x1112e6ad91d692a1,
	},
	ModeSHA512_256: {
		0x22312194fc2bf72c, 0x9f555fa3c84c64c2, 0x2393b86b6f53b151, 0x963877195940eabd,
		0x96283ee2a88effe3, 0xbe5e1e2553863992, 0x2b0199fc2c85b8aa, 0x0eb72ddc81c52ca2,
	},
}

var digestSizes = [4]int{
	ModeSHA512:     Size512,
	ModeSHA384:     Size384,
	ModeSHA512_224: Size512224,
	ModeSHA512_256: Size512256,
}

// round constants, FIPS 180-4 section 4.2.3.
var _K = [80]uint64{
	0x428a2f98d728ae22, 0x7137449123ef65cd, 0xb5c0fbcfec4d3b2f, 0xe9b5dba58189dbbc,
	0x3956c25bf348b538, 0x59f111f1b605d019, 0x923f82a4af194f9b, 0xab1c5ed5da6d8118,
	0xd807aa98a3030242, 0x12835b0145706fbe, 0x243185be4ee4b28c, 0x550c7dc3d5ffb4e2,
	0x72be5d74f27b896f, 0x80deb1fe3b1696b1, 0x9bdc06a725c71235, 0xc19bf174cf692694,
	0xe49b69c19ef14ad2, 0xefbe4786384f25e3, 0x0fc19dc68b8cd5b5, 0x240ca1cc77ac9c65,
	0x2de92c6f592b0275, 0x4a7484aa6ea6e483, 0x5cb0a9dcbd41fbd4, 0x76f988da831153b5,
	0x983e5152ee66dfab, 0xa831c66d2db43210, 0xb00327c898fb213f, 0xbf597fc7beef0ee4,
	0xc6e00bf33da88fc2, 0xd5a79147930aa725, 0x06ca6351e003826f, 0x142929670a0e6e70,
	0x27b70a8546d22ffc, 0x2e1b21385c26c926, 0x4d2c6dfc5ac42aed, 0x53380d139d95b3df,
	0x650a73548baf63de, 0x766a0abb3c77b2a8, 0x81c2c92e47edaee6, 0x92722c851482353b,
	0xa2bfe8a14cf10364, 0xa81a664bbc423001, 0xc24b8b70d0f89791, 0xc76c51a30654be30,
	0xd192e819d6ef5218, 0xd69906245565a910, 0xf40e35855771202a, 0x106aa07032bbd1b8,
	0x19a4c116b8d2d0c8, 0x1e376c085141ab53, 0x2748774cdf8eeb99, 0x34b0bcb5e19b48a8,
	0x391c0cb3c5c95a63, 0x4ed8aa4ae3418acb, 0x5b9cca4f7763e373, 0x682e6ff3d6b2b8a3,
	0x748f82ee5defb2fc, 0x78a5636f43172f60, 0x84c87814a1f0ab72, 0x8cc702081a6439ec,
	0x90befffa23631e28, 0xa4506cebde82bde9, 0xbef9a3f7b2c67915, 0xc67178f2e372532b,
	0xca273eceea26619c, 0xd186b8c721c0c207, 0xeada7dd6cde0eb1e, 0xf57d4f7fee6ed178,
	0x06f067aa72176fba, 0x0a637dc5a2c898a6, 0x113f9804bef90dae, 0x1b710b35131c471b,
	0x28db77f523047d84, 0x32caab7b40c72493, 0x3c9ebe0a15c9bebc, 0x431d67c49c100d4c,
	0x4cc5d4becb3e42b6, 0x597f299cfc657e2a, 0x5fcb6fab3ad6faec, 0x6c44198c4a475817,
}

// Valid reports whether m names a supported variant.
func (m Mode) Valid() bool {
	return m >= ModeSHA512 && m <= ModeSHA512_256
}

// Size returns the digest length in bytes, or 0 for an invalid mode.
func (m Mode) Size() int {
	if !m.Valid() {
		return 0
	}
	return digestSizes[m]
}

// BlockSize returns the input block size in bytes (128 for every variant).
func (m Mode) BlockSize() int {
	return BlockSize512
}

func (m Mode) String() string {
	switch m {
	case ModeSHA512:
		return "SHA-512"
	case ModeSHA384:
		return "SHA-384"
	case ModeSHA512_224:
		return "SHA-512/224"
	case ModeSHA512_256:
		return "SHA-512/256"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func checkMode(m Mode) error {
	if !m.Valid() {
		return newError(ErrUnsupportedMode, ErrCodeMode, fmt.Sprintf("unknown SHA-512 variant %d", int(m)))
	}
	return nil
}

// Functions, FIPS 180-4 section 4.1.3.

func ch(x, y, z uint64) uint64  { return (x & y) ^ (^x & z) }
func maj(x, y, z uint64) uint64 { return (x & y) ^ (x & z) ^ (y & z) }

func bigSigma0(x uint64) uint64 {
	return bits.RotateLeft64(x, -28) ^ bits.RotateLeft64(x, -34) ^ bits.RotateLeft64(x, -39)
}

func bigSigma1(x uint64) uint64 {
	return bits.RotateLeft64(x, -14) ^ bits.RotateLeft64(x, -18) ^ bits.RotateLeft64(x, -41)
}

func sigma0(x uint64) uint64 {
	return bits.RotateLeft64(x, -1) ^ bits.RotateLeft64(x, -8) ^ (x >> 7)
}

func sigma1(x uint64) uint64 {
	return bits.RotateLeft64(x, -19) ^ bits.RotateLeft64(x, -61) ^ (x >> 6)
}

// zeroPadBits returns k, the number of zero bits such that l + 1 + k = 896 mod 1024,
// given l mod 1024.
func zeroPadBits(lmod uint64) uint64 {
	if lmod <= 895 {
		return 895 - lmod
	}
	return 1024 - lmod - 1 + 896
}

// padding returns the suffix FIPS 180-4 section 5.1.2 appends to an n-byte message:
// the 0x80 marker, k/8 zero bytes and the 128-bit big-endian bit length.
func padding(n uint64) []byte {
	k := zeroPadBits((n << 3) % 1024)
	p := make([]byte, 1+k/8+16)
	p[0] = 0x80
	binary.BigEndian.PutUint64(p[len(p)-16:], n>>61)
	binary.BigEndian.PutUint64(p[len(p)-8:], n<<3)
	return p
}

// padMessage returns m followed by its padding; the result is a whole number of blocks.
func padMessage(m []byte) []byte {
	out := make([]byte, 0, len(m)+1+BlockSize512+16)
	out = append(out, m...)
	return append(out, padding(uint64(len(m)))...)
}

// compress folds one message block into the accumulator h (FIPS 180-4 section 6.4.2).
func compress(h *[8]uint64, blk *block) {
	var w [80]uint64
	copy(w[:], blk[:])
	for t := 16; t < 80; t++ {
		w[t] = sigma1(w[t-2]) + w[t-7] + sigma0(w[t-15]) + w[t-16]
	}

	a, b, c, d, e, f, g, hh := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]
	for t := 0; t < 80; t++ {
		t1 := hh + bigSigma1(e) + ch(e, f, g) + _K[t] + w[t]
		t2 := bigSigma0(a) + maj(a, b, c)
		hh = g
		g = f
		f = e
		e = d + t1
		d = c
		c = b
		b = a
		a = t1 + t2
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += d
	h[4] += e
	h[5] += f
	h[6] += g
	h[7] += hh
}

// compressBlocks runs compress over every 128-byte block of p. len(p) must be a
// multiple of BlockSize512.
func compressBlocks(h *[8]uint64, p []byte) {
	var blk block
	for i := 0; i+BlockSize512 <= len(p); i += BlockSize512 {
		loadBlock(&blk, p[i:])
		compress(h, &blk)
	}
}

// appendDigest appends the first size bytes of the big-endian serialisation of h.
func appendDigest(dst []byte, h *[8]uint64, size int) []byte {
	var full [Size512]byte
	for i, v := range h {
		binary.BigEndian.PutUint64(full[8*i:], v)
	}
	return append(dst, full[:size]...)
}

// sum hashes data with a mode already known to be valid.
func sum(data []byte, m Mode) []byte {
	h := initialHash[m]
	compressBlocks(&h, padMessage(data))
	return appendDigest(make([]byte, 0, digestSizes[m]), &h, digestSizes[m])
}

// Hash returns the digest of data under the selected variant.
//
// Returns ErrUnsupportedMode for an unknown mode.
func Hash(data []byte, m Mode) ([]byte, error) {
	if err := checkMode(m); err != nil {
		return nil, err
	}
	return sum(data, m), nil
}

// Sum512 returns the SHA-512 digest of data.
func Sum512(data []byte) [Size512]byte {
	var out [Size512]byte
	copy(out[:], sum(data, ModeSHA512))
	return out
}

// Sum384 returns the SHA-384 digest of data.
func Sum384(data []byte) [Size384]byte {
	var out [Size384]byte
	copy(out[:], sum(data, ModeSHA384))
	return out
}

// Sum512_224 returns the SHA-512/224 digest of data.
func Sum512_224(data []byte) [Size512224]byte {
	var out [Size512224]byte
	copy(out[:], sum(data, ModeSHA512_224))
	return out
}

// Sum512_256 returns the SHA-512/256 digest of data.
func Sum512_256(data []byte) [Size512256]byte {
	var out [Size512256]byte
	copy(out[:], sum(data, ModeSHA512_256))
	return out
}
