// errors.go: Sentinel errors and error codes shared by all primitives.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"errors"
	"fmt"

	goerrors "github.com/agilira/go-errors"
)

// Public standard errors. Every error returned by this package wraps exactly one
// of them, so callers can use errors.Is() for classification.
var (
	// ErrInvalidKeySize is returned when an AES key is not 16, 24 or 32 bytes.
	ErrInvalidKeySize = errors.New("crypto: invalid key size")

	// ErrInvalidIVSize is returned when a CBC initialization vector is not 16 bytes.
	ErrInvalidIVSize = errors.New("crypto: invalid IV size")

	// ErrInvalidBlockSize is returned when a buffer does not match the block size
	// of the structure it is converted into.
	ErrInvalidBlockSize = errors.New("crypto: invalid block size")

	// ErrCiphertextLength is returned when a CBC ciphertext is empty or not a
	// multiple of the AES block size.
	ErrCiphertextLength = errors.New("crypto: ciphertext length is not a positive multiple of the block size")

	// ErrInvalidPadding is returned when PKCS#7 padding fails validation.
	ErrInvalidPadding = errors.New("crypto: invalid padding")

	// ErrUnsupportedMode is returned for an unknown SHA-512 family variant.
	ErrUnsupportedMode = errors.New("crypto: unsupported hash mode")

	// ErrInvalidIterations is returned when an iteration count is not positive.
	ErrInvalidIterations = errors.New("crypto: invalid iteration count")

	// ErrInvalidKeyLength is returned when a requested derived key length is not
	// positive or is inconsistent with the PRF block length.
	ErrInvalidKeyLength = errors.New("crypto: invalid derived key length")

	// ErrPRFOutput is returned when a PRF produces output inconsistent with its
	// declared length.
	ErrPRFOutput = errors.New("crypto: PRF output inconsistent with declared length")

	// ErrNilPRF is returned when PBKDF2 is called without a PRF.
	ErrNilPRF = errors.New("crypto: PRF cannot be nil")

	// ErrRandom is returned when the system random source fails.
	ErrRandom = errors.New("crypto: random generation error")

	// ErrBase64Decode is returned when base64 decoding fails.
	ErrBase64Decode = errors.New("crypto: base64 decode error")

	// ErrHexDecode is returned when hexadecimal decoding fails.
	ErrHexDecode = errors.New("crypto: hex decode error")

	// ErrEmptyPassword is returned when DeriveKey is given an empty password.
	ErrEmptyPassword = errors.New("crypto: password cannot be empty")

	// ErrEmptySalt is returned when DeriveKey is given an empty salt.
	ErrEmptySalt = errors.New("crypto: salt cannot be empty")

	// ErrInvalidMasterKey is returned when HKDF is given empty keying material.
	ErrInvalidMasterKey = errors.New("crypto: invalid master key")
)

// Error codes for rich error handling
const (
	ErrCodeInvalidKey     = "CRYPTO_INVALID_KEY"
	ErrCodeInvalidIV      = "CRYPTO_INVALID_IV"
	ErrCodeInvalidBlock   = "CRYPTO_INVALID_BLOCK"
	ErrCodeCipherLength   = "CRYPTO_CIPHERTEXT_LENGTH"
	ErrCodeInvalidPadding = "CRYPTO_INVALID_PADDING"
	ErrCodeMode           = "CRYPTO_UNSUPPORTED_MODE"
	ErrCodeIterations     = "CRYPTO_INVALID_ITERATIONS"
	ErrCodeKeyLength      = "CRYPTO_INVALID_KEYLEN"
	ErrCodePRF            = "CRYPTO_PRF_OUTPUT"
	ErrCodeRandom         = "CRYPTO_RANDOM"
	ErrCodeBase64Decode   = "CRYPTO_BASE64_DECODE"
	ErrCodeHexDecode      = "CRYPTO_HEX_DECODE"
	ErrCodeEmptyPassword  = "CRYPTO_EMPTY_PASSWORD"
	ErrCodeEmptySalt      = "CRYPTO_EMPTY_SALT"
	ErrCodeMasterKey      = "CRYPTO_INVALID_MASTER_KEY"
)

// newError pairs a public sentinel with a coded go-errors error.
func newError(sentinel error, code goerrors.ErrorCode, msg string) error {
	return fmt.Errorf("%w: %w", sentinel, goerrors.New(code, msg))
}

// wrapError is newError for failures caused by an underlying error.
func wrapError(sentinel error, err error, code goerrors.ErrorCode, msg string) error {
	return fmt.Errorf("%w: %w", sentinel, goerrors.Wrap(err, code, msg))
}
