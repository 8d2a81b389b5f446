// Package crypto implements the AES block cipher in CBC mode, the SHA-512 hash
// family, HMAC and PBKDF2 from their NIST and IETF standards.
//
// The package provides:
//   - AES-128, AES-192 and AES-256 (FIPS 197) with a crypto/cipher.Block implementation
//   - CBC mode with PKCS#7 padding (NIST SP 800-38A)
//   - SHA-512, SHA-384, SHA-512/224 and SHA-512/256 (FIPS 180-4), one-shot and hash.Hash
//   - HMAC over any SHA-512 variant (FIPS 198-1)
//   - PBKDF2 over an injected PRF (RFC 8018), and HKDF (RFC 5869)
//   - Key, IV and salt generation, import/export and zeroization helpers
//
// Every operation is a pure function of its inputs: there is no hidden state
// apart from a cache of expanded AES key schedules used by EncryptBytes and
// DecryptBytes, and all functions are safe for concurrent use.
//
// # Quick Start
//
// CBC encryption with an explicit IV:
//
//	key, _ := crypto.GenerateKey()
//	iv, _ := crypto.GenerateIV()
//
//	ciphertext, err := crypto.EncryptCBC([]byte("sensitive data"), key, iv)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	plaintext, err := crypto.DecryptCBC(ciphertext, key, iv)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// The ciphertext is always 1 to 16 bytes longer than the plaintext: PKCS#7
// adds a full block when the input is already block aligned.
//
// # Hashing and MACs
//
//	digest := crypto.Sum512([]byte("abc"))
//	short, _ := crypto.Hash([]byte("abc"), crypto.ModeSHA512_256)
//	mac, _ := crypto.HMAC(key, []byte("message"), crypto.ModeSHA384)
//
// # Key Derivation
//
// PBKDF2 takes its PRF as a function value, so it can run over any keyed
// function; HMACPRF supplies the usual HMAC-SHA-512 family:
//
//	prf, _ := crypto.HMACPRF(crypto.ModeSHA512)
//	dk, err := crypto.PBKDF2(prf, password, salt, 210000, 64, crypto.Size512)
//
// DeriveKey wraps this with defaults, arbitrary key lengths and optional
// parallel block derivation:
//
//	key, err := crypto.DeriveKey(password, salt, 32, crypto.DefaultKDFParams())
//
// # Error Handling
//
// Every error wraps one of the exported sentinels and a coded error from
// github.com/agilira/go-errors:
//
//	plaintext, err := crypto.DecryptCBC(ciphertext, key, iv)
//	if errors.Is(err, crypto.ErrInvalidPadding) {
//		// wrong key or IV, or corrupted ciphertext
//	}
//
// # Security Considerations
//
// CBC provides confidentiality only. Authenticate ciphertexts (for example
// encrypt-then-MAC with HMAC) before decrypting untrusted input. The
// implementation follows the standards bit for bit but is not hardened
// against timing or cache side channels.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package crypto
