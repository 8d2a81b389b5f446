// pool.go: Scratch buffer pooling for HMAC pads and cipher working buffers.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"sync"
	"sync/atomic"
)

var (
	// Buffers sized for one AES block or an IV
	smallBufferPool = sync.Pool{
		New: func() interface{} {
			buf := make([]byte, AESBlockSize)
			return &buf
		},
	}

	// Buffers sized for one SHA-512 block, used for normalised HMAC keys
	blockBufferPool = sync.Pool{
		New: func() interface{} {
			buf := make([]byte, BlockSize512)
			return &buf
		},
	}

	// Pool for growable byte slices
	dynamicBufferPool = sync.Pool{
		New: func() interface{} {
			buf := make([]byte, 0, 256)
			return &buf // Return pointer to avoid allocations (SA6002)
		},
	}
)

// Buffers currently checked out of each pool
var smallInUse, blockInUse, dynamicInUse atomic.Int64

func init() {
	WarmupPools(4)
}

// getBuffer retrieves a buffer of exactly size bytes from the matching pool.
// Pooled buffers are wiped on return, so the result is always all zeros.
func getBuffer(size int) *[]byte {
	switch {
	case size <= AESBlockSize:
		buf := smallBufferPool.Get().(*[]byte)
		*buf = (*buf)[:size]
		smallInUse.Add(1)
		return buf
	case size <= BlockSize512:
		buf := blockBufferPool.Get().(*[]byte)
		*buf = (*buf)[:size]
		blockInUse.Add(1)
		return buf
	default:
		buf := make([]byte, size)
		return &buf
	}
}

// clearBuffer zeroes buf.
func clearBuffer(buf []byte) {
	clear(buf)
}

// putBuffer wipes a buffer and returns it to its pool.
func putBuffer(buf *[]byte) {
	if buf == nil {
		return
	}

	full := (*buf)[:cap(*buf)]
	clearBuffer(full)

	switch cap(*buf) {
	case AESBlockSize:
		smallInUse.Add(-1)
		smallBufferPool.Put(buf)
	case BlockSize512:
		blockInUse.Add(-1)
		blockBufferPool.Put(buf)
		// Non-standard sizes are left to the garbage collector
	}
}

// getDynamicBuffer retrieves an empty growable buffer.
func getDynamicBuffer() []byte {
	buf := dynamicBufferPool.Get().(*[]byte)
	dynamicInUse.Add(1)
	return (*buf)[:0]
}

// putDynamicBuffer wipes a growable buffer and returns it to the pool.
func putDynamicBuffer(buf []byte) {
	bufCap := cap(buf)
	if bufCap == 0 {
		return
	}
	dynamicInUse.Add(-1)
	clearBuffer(buf[:bufCap])

	if bufCap <= 4*1024 && bufCap >= 128 {
		dynamicBufferPool.Put(&buf)
	}
}

// PoolStats reports how many buffers of each pool are checked out and not yet
// returned. Non-zero values at rest indicate a missing put.
type PoolStats struct {
	SmallBuffers   int64
	BlockBuffers   int64
	DynamicBuffers int64
}

// GetPoolStats returns the current checkout counts of the pools.
func GetPoolStats() PoolStats {
	return PoolStats{
		SmallBuffers:   smallInUse.Load(),
		BlockBuffers:   blockInUse.Load(),
		DynamicBuffers: dynamicInUse.Load(),
	}
}

// WarmupPools pre-allocates count buffers in every pool to reduce first-use latency.
func WarmupPools(count int) {
	held := make([]*[]byte, 0, 2*count)
	dyn := make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		held = append(held, getBuffer(AESBlockSize), getBuffer(BlockSize512))
		dyn = append(dyn, getDynamicBuffer())
	}
	for _, b := range held {
		putBuffer(b)
	}
	for _, b := range dyn {
		putDynamicBuffer(b)
	}
}
