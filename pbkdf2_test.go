// pbkdf2_test.go: Test cases for PBKDF2 with HMAC and injected PRFs.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto_test

import (
	"bytes"
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"testing"

	"golang.org/x/crypto/pbkdf2"

	"github.com/agilira/kryptos"
)

// PBKDF2-HMAC-SHA512 vectors in the layout of RFC 6070.
var pbkdf2Vectors = []struct {
	password string
	salt     string
	c        int
	dkLen    int
	want     string
}{
	{"password", "salt", 1, 64,
		"867f70cf1ade02cff3752599a3a53dc4af34c7a669815ae5d513554e1c8cf252c02d470a285a0501bad999bfe943c08f050235d7d68b1da55e63f73b60a57fce"},
	{"password", "salt", 2, 64,
		"e1d9c16aa681708a45f5c7c4e215ceb66e011a2e9f0040713f18aefdb866d53cf76cab2868a39b9f7840edce4fef5a82be67335c77a6068e04112754f27ccf4e"},
	{"password", "salt", 4096, 64,
		"d197b1b33db0143e018b12f3d1d1479e6cdebdcc97c5c0f87f6902e072f457b5143f30602641b3d55cd335988cb36b84376060ecd532e039b742a239434af2d5"},
	{"passwordPASSWORDpassword", "saltSALTsaltSALTsaltSALTsaltSALTsalt", 4096, 128,
		"8c0511f4c6e597c6ac6315d8f0362e225f3c501495ba23b868c005174dc4ee71115b59f9e60cd9532fa33e0f75aefe30225c583a186cd82bd4daea9724a3d3b8" +
			"04f75bdd41494fa324cab24bcc680fb3b96a30cf5d21fac3c2875913919f3399b1d9ce7eb54c95ba49118596cf7465719bbe02c4ecab1b1541298c321d13c6f6"},
	{"pass\x00word", "sa\x00lt", 4096, 64,
		"9d9e9c4cd21fe4be24d5b8244c759665f39d98fc12a9ca759bb021db3cfadf345844aebe70dd8b2f6966f25f3613e1187bbd24ed2ca43ed13b246e4675be7ab9"},
}

func TestPBKDF2_KnownAnswers(t *testing.T) {
	prf, err := crypto.HMACPRF(crypto.ModeSHA512)
	if err != nil {
		t.Fatalf("HMACPRF() error: %v", err)
	}

	for _, tt := range pbkdf2Vectors {
		got, err := crypto.PBKDF2(prf, []byte(tt.password), []byte(tt.salt), tt.c, tt.dkLen, crypto.Size512)
		if err != nil {
			t.Fatalf("PBKDF2(%q, %q, %d) error: %v", tt.password, tt.salt, tt.c, err)
		}
		if hex.EncodeToString(got) != tt.want {
			t.Errorf("PBKDF2(%q, %q, %d) failed\ngot:  %x\nwant: %s", tt.password, tt.salt, tt.c, got, tt.want)
		}
	}
}

func TestPBKDF2_MatchesXCrypto(t *testing.T) {
	password := []byte("cross-check password")
	salt := []byte("cross-check salt")

	tests := []struct {
		mode  crypto.Mode
		dkLen int
		ref   func(pw, salt []byte, iter, keyLen int) []byte
	}{
		{crypto.ModeSHA512, 128, func(pw, s []byte, i, n int) []byte { return pbkdf2.Key(pw, s, i, n, sha512.New) }},
		{crypto.ModeSHA384, 96, func(pw, s []byte, i, n int) []byte { return pbkdf2.Key(pw, s, i, n, sha512.New384) }},
		{crypto.ModeSHA512_224, 56, func(pw, s []byte, i, n int) []byte { return pbkdf2.Key(pw, s, i, n, sha512.New512_224) }},
		{crypto.ModeSHA512_256, 64, func(pw, s []byte, i, n int) []byte { return pbkdf2.Key(pw, s, i, n, sha512.New512_256) }},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			prf, err := crypto.HMACPRF(tt.mode)
			if err != nil {
				t.Fatalf("HMACPRF() error: %v", err)
			}
			got, err := crypto.PBKDF2(prf, password, salt, 100, tt.dkLen, tt.mode.Size())
			if err != nil {
				t.Fatalf("PBKDF2() error: %v", err)
			}
			if want := tt.ref(password, salt, 100, tt.dkLen); !bytes.Equal(got, want) {
				t.Errorf("PBKDF2 mismatch\ngot:  %x\nwant: %x", got, want)
			}
		})
	}
}

func TestPBKDF2_Deterministic(t *testing.T) {
	prf, _ := crypto.HMACPRF(crypto.ModeSHA384)
	a, _ := crypto.PBKDF2(prf, []byte("pw"), []byte("salt"), 10, 96, crypto.Size384)
	b, _ := crypto.PBKDF2(prf, []byte("pw"), []byte("salt"), 10, 96, crypto.Size384)
	if !bytes.Equal(a, b) {
		t.Error("PBKDF2 is not deterministic")
	}
}

// xorPRF is a transparent PRF: it returns the first width bytes of
// data XOR key, cycling the key.
func xorPRF(width int) crypto.PRF {
	return func(key, data []byte) []byte {
		out := make([]byte, width)
		for i := range out {
			var d, k byte
			if i < len(data) {
				d = data[i]
			}
			if len(key) > 0 {
				k = key[i%len(key)]
			}
			out[i] = d ^ k
		}
		return out
	}
}

// With c = 1 each block is just PRF(password, salt || BE32(i)).
func TestPBKDF2_InjectedPRF_SingleIteration(t *testing.T) {
	const width = 8
	prf := xorPRF(width)
	password := []byte{0xff}
	salt := []byte{0x10, 0x20}

	got, err := crypto.PBKDF2(prf, password, salt, 1, 3*width, width)
	if err != nil {
		t.Fatalf("PBKDF2() error: %v", err)
	}

	var want []byte
	for i := uint32(1); i <= 3; i++ {
		msg := binary.BigEndian.AppendUint32(append([]byte(nil), salt...), i)
		want = append(want, prf(password, msg)...)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("PBKDF2() = %x, want %x", got, want)
	}
}

// A PRF narrower than hLen still fills dkLen from blocks of its own width.
func TestPBKDF2_NarrowPRF(t *testing.T) {
	narrow, err := crypto.PBKDF2(xorPRF(16), []byte("pw"), []byte("salt"), 3, 64, 32)
	if err != nil {
		t.Fatalf("PBKDF2() error: %v", err)
	}
	if len(narrow) != 64 {
		t.Fatalf("len = %d, want 64", len(narrow))
	}

	same, err := crypto.PBKDF2(xorPRF(16), []byte("pw"), []byte("salt"), 3, 64, 16)
	if err != nil {
		t.Fatalf("PBKDF2() error: %v", err)
	}
	if !bytes.Equal(narrow, same) {
		t.Error("output must depend only on the PRF's real width, not on hLen")
	}
}

func TestPBKDF2_InvalidParameters(t *testing.T) {
	prf, _ := crypto.HMACPRF(crypto.ModeSHA512)
	pw, salt := []byte("pw"), []byte("salt")

	growing := 0
	unstable := func(key, data []byte) []byte {
		growing++
		return make([]byte, 32/growing)
	}

	tests := []struct {
		name  string
		prf   crypto.PRF
		c     int
		dkLen int
		hLen  int
		want  error
	}{
		{"nil PRF", nil, 1, 64, 64, crypto.ErrNilPRF},
		{"zero iterations", prf, 0, 64, 64, crypto.ErrInvalidIterations},
		{"negative iterations", prf, -5, 64, 64, crypto.ErrInvalidIterations},
		{"zero dkLen", prf, 1, 0, 64, crypto.ErrInvalidKeyLength},
		{"zero hLen", prf, 1, 64, 0, crypto.ErrInvalidKeyLength},
		{"dkLen not a multiple", prf, 1, 32, 64, crypto.ErrInvalidKeyLength},
		{"PRF wider than hLen", prf, 1, 32, 32, crypto.ErrPRFOutput},
		{"PRF does not divide hLen", xorPRF(24), 1, 32, 32, crypto.ErrPRFOutput},
		{"empty PRF output", xorPRF(0), 1, 32, 32, crypto.ErrPRFOutput},
		{"PRF output changes", unstable, 2, 32, 32, crypto.ErrPRFOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dk, err := crypto.PBKDF2(tt.prf, pw, salt, tt.c, tt.dkLen, tt.hLen)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if dk != nil {
				t.Errorf("expected no output on error, got %x", dk)
			}
		})
	}
}

func TestHMACPRF_InvalidMode(t *testing.T) {
	prf, err := crypto.HMACPRF(crypto.Mode(42))
	if prf != nil || !errors.Is(err, crypto.ErrUnsupportedMode) {
		t.Errorf("HMACPRF(42) = (%v, %v), want ErrUnsupportedMode", prf != nil, err)
	}
}
