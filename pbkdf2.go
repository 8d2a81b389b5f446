// pbkdf2.go: Password-based key derivation (PBKDF2, RFC 8018 section 5.2) over
// an injected pseudorandom function.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"encoding/binary"
	"fmt"
	"math"
)

// PRF is a pseudorandom function keyed by key over data. PBKDF2 calls it with
// the password as key. Implementations must be deterministic and return
// output of a fixed length.
type PRF func(key, data []byte) []byte

// HMACPRF returns HMAC with the selected SHA-512 variant as a PRF.
//
// Returns ErrUnsupportedMode for an unknown mode.
func HMACPRF(m Mode) (PRF, error) {
	if err := checkMode(m); err != nil {
		return nil, err
	}
	return func(key, data []byte) []byte {
		return hmacSum(key, data, m)
	}, nil
}

// PBKDF2 derives dkLen bytes from password and salt with c iterations of prf.
//
// Parameters:
//   - prf: the pseudorandom function, typically from HMACPRF
//   - password, salt: the inputs; salt should be random and at least 16 bytes
//   - c: iteration count (must be positive; c = 1 is only suitable for tests)
//   - dkLen: derived key length, a positive multiple of hLen
//   - hLen: the declared PRF output length
//
// The PRF's actual output length must divide hLen. Output blocks are
// T_i = U_1 ^ ... ^ U_c with U_1 = PRF(password, salt || BE32(i)) and
// U_j = PRF(password, U_{j-1}).
//
// Example:
//
//	prf, _ := crypto.HMACPRF(crypto.ModeSHA512)
//	dk, err := crypto.PBKDF2(prf, password, salt, 210000, 64, crypto.Size512)
func PBKDF2(prf PRF, password, salt []byte, c, dkLen, hLen int) ([]byte, error) {
	first, prfLen, err := pbkdf2Prepare(prf, password, salt, c, dkLen, hLen)
	if err != nil {
		return nil, err
	}

	n := dkLen / prfLen
	dk := make([]byte, 0, n*prfLen)
	dk = append(dk, first...)
	for i := 2; i <= n; i++ {
		t, err := pbkdf2Block(prf, password, salt, c, uint32(i), prfLen) // #nosec G115 -- n checked in pbkdf2Prepare
		if err != nil {
			return nil, err
		}
		dk = append(dk, t...)
	}
	return dk[:dkLen], nil
}

// pbkdf2Prepare validates the arguments and derives block 1, which doubles as
// the PRF output length sample.
func pbkdf2Prepare(prf PRF, password, salt []byte, c, dkLen, hLen int) ([]byte, int, error) {
	if prf == nil {
		return nil, 0, newError(ErrNilPRF, ErrCodePRF, "PRF cannot be nil")
	}
	if c <= 0 {
		return nil, 0, newError(ErrInvalidIterations, ErrCodeIterations,
			fmt.Sprintf("iteration count must be positive (got %d)", c))
	}
	if hLen <= 0 || dkLen <= 0 {
		return nil, 0, newError(ErrInvalidKeyLength, ErrCodeKeyLength,
			fmt.Sprintf("dkLen and hLen must be positive (got %d, %d)", dkLen, hLen))
	}
	if dkLen%hLen != 0 {
		return nil, 0, newError(ErrInvalidKeyLength, ErrCodeKeyLength,
			fmt.Sprintf("dkLen %d is not a multiple of hLen %d", dkLen, hLen))
	}

	u := prf(password, saltIndex(salt, 1))
	prfLen := len(u)
	if prfLen == 0 || hLen%prfLen != 0 {
		return nil, 0, newError(ErrPRFOutput, ErrCodePRF,
			fmt.Sprintf("PRF output length %d does not divide hLen %d", prfLen, hLen))
	}
	if uint64(dkLen/prfLen) > math.MaxUint32 {
		return nil, 0, newError(ErrInvalidKeyLength, ErrCodeKeyLength, "derived key too long")
	}

	t, err := pbkdf2Fold(prf, password, u, c)
	if err != nil {
		return nil, 0, err
	}
	return t, prfLen, nil
}

// pbkdf2Block computes T_i.
func pbkdf2Block(prf PRF, password, salt []byte, c int, i uint32, prfLen int) ([]byte, error) {
	u := prf(password, saltIndex(salt, i))
	if len(u) != prfLen {
		return nil, newError(ErrPRFOutput, ErrCodePRF,
			fmt.Sprintf("PRF output length changed from %d to %d", prfLen, len(u)))
	}
	return pbkdf2Fold(prf, password, u, c)
}

// pbkdf2Fold XORs U_1..U_c into a single accumulator seeded with a copy of u1.
func pbkdf2Fold(prf PRF, password, u1 []byte, c int) ([]byte, error) {
	t := make([]byte, len(u1))
	copy(t, u1)
	u := u1
	for j := 2; j <= c; j++ {
		u = prf(password, u)
		if len(u) != len(t) {
			return nil, newError(ErrPRFOutput, ErrCodePRF,
				fmt.Sprintf("PRF output length changed from %d to %d", len(t), len(u)))
		}
		for k := range t {
			t[k] ^= u[k]
		}
	}
	return t, nil
}

// saltIndex returns salt || BE32(i) in a fresh buffer.
func saltIndex(salt []byte, i uint32) []byte {
	b := make([]byte, len(salt), len(salt)+4)
	copy(b, salt)
	return binary.BigEndian.AppendUint32(b, i)
}
