// kdf.go: High-level key derivation built on the in-house PBKDF2 and HMAC:
// password-based keys, HKDF for high-entropy inputs, and iteration calibration.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agilira/go-timecache"
)

// Default PBKDF2 parameters.
const (
	// DefaultIterations follows the OWASP 2023 recommendation for
	// PBKDF2-HMAC-SHA512.
	DefaultIterations = 210000

	// DefaultMode is the PRF hash used when KDFParams.Mode is left zero.
	DefaultMode = ModeSHA512

	// DefaultThreads is the number of goroutines deriving output blocks.
	DefaultThreads = 1

	// MinCalibratedIterations is the floor CalibrateIterations never goes below.
	MinCalibratedIterations = 1000
)

// KDFParams defines parameters for PBKDF2-HMAC key derivation.
//
// Zero fields fall back to the package defaults. The zero Mode is ModeSHA512.
//
// Example:
//
//	params := &crypto.KDFParams{
//		Iterations: 600000,
//		Mode:       crypto.ModeSHA512,
//		Threads:    2,
//	}
//	key, err := crypto.DeriveKey(password, salt, 32, params)
type KDFParams struct {
	// Iterations is the PBKDF2 iteration count. If zero, DefaultIterations is used.
	Iterations int `json:"iterations,omitempty"`

	// Mode selects the HMAC hash.
	Mode Mode `json:"mode,omitempty"`

	// Threads bounds how many output blocks are derived concurrently. Only keys
	// longer than one digest benefit. If zero, DefaultThreads is used.
	Threads int `json:"threads,omitempty"`
}

// DefaultKDFParams returns the package defaults: 210000 iterations of
// HMAC-SHA-512 on one goroutine.
func DefaultKDFParams() *KDFParams {
	return &KDFParams{
		Iterations: DefaultIterations,
		Mode:       DefaultMode,
		Threads:    DefaultThreads,
	}
}

// FastKDFParams returns parameters for tests and development only.
func FastKDFParams() *KDFParams {
	return &KDFParams{
		Iterations: 10000,
		Mode:       ModeSHA512,
		Threads:    1,
	}
}

// HighSecurityKDFParams returns parameters for master keys and other
// high-value secrets.
func HighSecurityKDFParams() *KDFParams {
	return &KDFParams{
		Iterations: 600000,
		Mode:       ModeSHA512,
		Threads:    4,
	}
}

// resolve fills zero fields with defaults.
func (p *KDFParams) resolve() KDFParams {
	r := KDFParams{Iterations: DefaultIterations, Mode: DefaultMode, Threads: DefaultThreads}
	if p == nil {
		return r
	}
	if p.Iterations != 0 {
		r.Iterations = p.Iterations
	}
	r.Mode = p.Mode
	if p.Threads > 0 {
		r.Threads = p.Threads
	}
	return r
}

// DeriveKey derives keyLen bytes from a password with PBKDF2-HMAC.
//
// Unlike PBKDF2, keyLen need not be a multiple of the digest size: whole
// blocks are derived and the result truncated, which is standard PBKDF2
// output.
//
// Parameters:
//   - password: The password to derive the key from (cannot be empty)
//   - salt: The salt to use (cannot be empty, should be random, 16+ bytes)
//   - keyLen: The desired key length in bytes (must be positive)
//   - params: Custom parameters (nil to use DefaultKDFParams)
//
// Example:
//
//	salt, _ := crypto.GenerateSalt(16)
//	key, err := crypto.DeriveKey([]byte("correct horse"), salt, 32, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
func DeriveKey(password, salt []byte, keyLen int, params *KDFParams) ([]byte, error) {
	if len(password) == 0 {
		return nil, newError(ErrEmptyPassword, ErrCodeEmptyPassword, "password cannot be empty")
	}
	if len(salt) == 0 {
		return nil, newError(ErrEmptySalt, ErrCodeEmptySalt, "salt cannot be empty")
	}
	if keyLen <= 0 {
		return nil, newError(ErrInvalidKeyLength, ErrCodeKeyLength, "key length must be positive")
	}

	p := params.resolve()
	prf, err := HMACPRF(p.Mode)
	if err != nil {
		return nil, err
	}

	hLen := p.Mode.Size()
	dkLen := (keyLen + hLen - 1) / hLen * hLen

	var dk []byte
	if p.Threads <= 1 || dkLen == hLen {
		dk, err = PBKDF2(prf, password, salt, p.Iterations, dkLen, hLen)
	} else {
		dk, err = pbkdf2Parallel(prf, password, salt, p.Iterations, dkLen, hLen, p.Threads)
	}
	if err != nil {
		return nil, err
	}

	key := make([]byte, keyLen)
	copy(key, dk)
	Zeroize(dk)
	return key, nil
}

// DeriveKeyDefault derives a key with DefaultKDFParams.
func DeriveKeyDefault(password, salt []byte, keyLen int) ([]byte, error) {
	return DeriveKey(password, salt, keyLen, nil)
}

// pbkdf2Parallel is PBKDF2 with blocks 2..n spread over up to threads goroutines.
// Blocks are independent; only the iterations inside one block are sequential.
func pbkdf2Parallel(prf PRF, password, salt []byte, c, dkLen, hLen, threads int) ([]byte, error) {
	first, prfLen, err := pbkdf2Prepare(prf, password, salt, c, dkLen, hLen)
	if err != nil {
		return nil, err
	}

	n := dkLen / prfLen
	dk := make([]byte, n*prfLen)
	copy(dk, first)

	if threads > n-1 {
		threads = n - 1
	}

	indices := make(chan int)
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		failed   atomic.Bool
		firstErr error
	)
	for w := 0; w < threads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				if failed.Load() {
					continue
				}
				t, err := pbkdf2Block(prf, password, salt, c, uint32(i), prfLen) // #nosec G115 -- n checked in pbkdf2Prepare
				if err != nil {
					errOnce.Do(func() { firstErr = err })
					failed.Store(true)
					continue
				}
				copy(dk[(i-1)*prfLen:], t)
				Zeroize(t)
			}
		}()
	}
	for i := 2; i <= n && !failed.Load(); i++ {
		indices <- i
	}
	close(indices)
	wg.Wait()

	if firstErr != nil {
		Zeroize(dk)
		return nil, firstErr
	}
	return dk[:dkLen], nil
}

// CalibrateIterations estimates the PBKDF2-HMAC iteration count whose single
// block derivation takes about target on this machine.
//
// The estimate is extrapolated from timed probe runs and never falls below
// MinCalibratedIterations.
//
// Example:
//
//	iters, err := crypto.CalibrateIterations(crypto.ModeSHA512, 250*time.Millisecond)
//	params := &crypto.KDFParams{Iterations: iters}
func CalibrateIterations(m Mode, target time.Duration) (int, error) {
	if err := checkMode(m); err != nil {
		return 0, err
	}
	if target <= 0 {
		return 0, newError(ErrInvalidIterations, ErrCodeIterations, "calibration target must be positive")
	}
	prf, err := HMACPRF(m)
	if err != nil {
		return 0, err
	}

	const minSample = 25 * time.Millisecond
	password := []byte("calibration-password")
	salt := make([]byte, 16)

	probe := MinCalibratedIterations
	for {
		start := timecache.CachedTime()
		if _, err := PBKDF2(prf, password, salt, probe, m.Size(), m.Size()); err != nil {
			return 0, err
		}
		elapsed := timecache.CachedTime().Sub(start)

		if elapsed >= minSample {
			estimate := int(float64(probe) * float64(target) / float64(elapsed))
			if estimate < MinCalibratedIterations {
				estimate = MinCalibratedIterations
			}
			return estimate, nil
		}
		if probe > 1<<28 {
			return 0, newError(ErrInvalidIterations, ErrCodeIterations,
				fmt.Sprintf("clock did not advance after %d iterations", probe))
		}
		probe *= 2
	}
}

// DeriveKeyHKDF derives a key with HKDF (RFC 5869) over HMAC with the selected
// SHA-512 variant.
//
// HKDF is meant for high-entropy input keying material such as random master
// keys; use DeriveKey for passwords.
//
// Parameters:
//   - masterKey: The input keying material (cannot be empty)
//   - salt: Optional salt (nil means a zero-filled salt of digest length)
//   - info: Optional context binding the key to its purpose
//   - keyLen: Output length, at most 255 digests
//   - m: The hash variant
//
// Example:
//
//	dek, err := crypto.DeriveKeyHKDF(masterKey, nil, []byte("dek-v1"), 32, crypto.ModeSHA512)
func DeriveKeyHKDF(masterKey, salt, info []byte, keyLen int, m Mode) ([]byte, error) {
	if err := checkMode(m); err != nil {
		return nil, err
	}
	if len(masterKey) == 0 {
		return nil, newError(ErrInvalidMasterKey, ErrCodeMasterKey, "master key cannot be empty")
	}
	if keyLen <= 0 {
		return nil, newError(ErrInvalidKeyLength, ErrCodeKeyLength, "key length must be positive")
	}
	if keyLen > 255*m.Size() {
		return nil, newError(ErrInvalidKeyLength, ErrCodeKeyLength,
			fmt.Sprintf("key length too large for HKDF-%s", m))
	}

	if salt == nil {
		salt = make([]byte, m.Size())
	}

	prk := hkdfExtract(m, salt, masterKey)
	defer Zeroize(prk)
	return hkdfExpand(m, prk, info, keyLen), nil
}

// DeriveKeyHKDFDefault derives a key with HKDF-SHA-512, no salt and no info.
func DeriveKeyHKDFDefault(masterKey []byte, keyLen int) ([]byte, error) {
	return DeriveKeyHKDF(masterKey, nil, nil, keyLen, ModeSHA512)
}

// hkdfExtract implements PRK = HMAC(salt, IKM).
func hkdfExtract(m Mode, salt, ikm []byte) []byte {
	return hmacSum(salt, ikm, m)
}

// hkdfExpand implements T(i) = HMAC(PRK, T(i-1) || info || i), concatenated
// and truncated to length.
func hkdfExpand(m Mode, prk, info []byte, length int) []byte {
	hashSize := m.Size()
	n := (length + hashSize - 1) / hashSize

	okm := make([]byte, 0, n*hashSize)

	msg := getDynamicBuffer()
	defer func() { putDynamicBuffer(msg) }()

	var t []byte
	for i := 1; i <= n; i++ {
		msg = append(msg[:0], t...)
		msg = append(msg, info...)
		msg = append(msg, byte(i)) // #nosec G115 -- n <= 255
		t = hmacSum(prk, msg, m)
		okm = append(okm, t...)
	}
	return okm[:length]
}
