// hmac.go: Keyed-hash message authentication (FIPS 198-1) over the SHA-512 family.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"crypto/subtle"
)

const (
	ipad = 0x36
	opad = 0x5c
)

// HMAC computes HMAC(key, message) with the selected SHA-512 variant.
//
// Keys longer than the 128-byte block are hashed first; shorter keys are
// zero-padded. The result is mode.Size() bytes long.
//
// Returns ErrUnsupportedMode for an unknown mode.
//
// Example:
//
//	mac, err := crypto.HMAC(key, []byte("message"), crypto.ModeSHA512)
//	if err != nil {
//		log.Fatal(err)
//	}
func HMAC(key, message []byte, m Mode) ([]byte, error) {
	if err := checkMode(m); err != nil {
		return nil, err
	}
	return hmacSum(key, message, m), nil
}

// VerifyHMAC reports whether mac is the HMAC of message under key, comparing
// in constant time. An unknown mode never verifies.
func VerifyHMAC(key, message, mac []byte, m Mode) bool {
	expected, err := HMAC(key, message, m)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(expected, mac) == 1
}

// hmacSum is HMAC for a mode already known to be valid.
func hmacSum(key, message []byte, m Mode) []byte {
	k0Buf := getBuffer(BlockSize512)
	defer putBuffer(k0Buf)
	k0 := *k0Buf

	// Steps 1-3: K0
	if len(key) > BlockSize512 {
		copy(k0, sum(key, m))
	} else {
		copy(k0, key)
	}

	// Steps 4-6: H((K0 ^ ipad) || text)
	inner := make([]byte, BlockSize512, BlockSize512+len(message))
	for i, b := range k0 {
		inner[i] = b ^ ipad
	}
	innerSum := sum(append(inner, message...), m)
	clearBuffer(inner)

	// Steps 7-9: H((K0 ^ opad) || inner)
	outer := make([]byte, BlockSize512, BlockSize512+len(innerSum))
	for i, b := range k0 {
		outer[i] = b ^ opad
	}
	mac := sum(append(outer, innerSum...), m)
	clearBuffer(outer)
	return mac
}
