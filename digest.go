// digest.go: Incremental SHA-512 family hashing through the hash.Hash interface.
//
// The digest buffers input until a full 128-byte block is available and feeds
// complete blocks to the same compression engine used by the one-shot Sum
// functions, so both paths produce identical output.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"hash"
)

// digest is the running state of an incremental hash.
type digest struct {
	h    [8]uint64
	x    [BlockSize512]byte // partial block
	nx   int                // bytes buffered in x
	len  uint64             // total bytes written
	mode Mode
}

// NewHash returns a hash.Hash computing the selected SHA-512 variant.
//
// Returns ErrUnsupportedMode for an unknown mode.
//
// Example:
//
//	h, _ := crypto.NewHash(crypto.ModeSHA384)
//	io.Copy(h, file)
//	fmt.Printf("%x\n", h.Sum(nil))
func NewHash(m Mode) (hash.Hash, error) {
	if err := checkMode(m); err != nil {
		return nil, err
	}
	return newDigest(m), nil
}

// New512 returns a hash.Hash computing SHA-512.
func New512() hash.Hash { return newDigest(ModeSHA512) }

// New384 returns a hash.Hash computing SHA-384.
func New384() hash.Hash { return newDigest(ModeSHA384) }

// New512_224 returns a hash.Hash computing SHA-512/224.
func New512_224() hash.Hash { return newDigest(ModeSHA512_224) }

// New512_256 returns a hash.Hash computing SHA-512/256.
func New512_256() hash.Hash { return newDigest(ModeSHA512_256) }

func newDigest(m Mode) *digest {
	d := &digest{mode: m}
	d.Reset()
	return d
}

func (d *digest) Reset() {
	d.h = initialHash[d.mode]
	d.nx = 0
	d.len = 0
}

func (d *digest) Size() int { return digestSizes[d.mode] }

func (d *digest) BlockSize() int { return BlockSize512 }

// Write never returns an error.
func (d *digest) Write(p []byte) (int, error) {
	n := len(p)
	d.len += uint64(n)

	// Top up a partially filled block first
	if d.nx > 0 {
		c := copy(d.x[d.nx:], p)
		d.nx += c
		p = p[c:]
		if d.nx == BlockSize512 {
			compressBlocks(&d.h, d.x[:])
			d.nx = 0
		}
	}

	// Compress whole blocks straight from the input
	if full := len(p) - len(p)%BlockSize512; full > 0 {
		compressBlocks(&d.h, p[:full])
		p = p[full:]
	}

	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return n, nil
}

// Sum appends the digest to b without changing the running state.
func (d *digest) Sum(b []byte) []byte {
	d0 := *d
	tail := append(d0.x[:d0.nx:d0.nx], padding(d0.len)...)
	compressBlocks(&d0.h, tail)
	return appendDigest(b, &d0.h, digestSizes[d0.mode])
}
