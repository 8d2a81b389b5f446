// crypto_concurrent_test.go: Concurrent test cases for cryptographic utilities.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto_test

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/agilira/kryptos"
)

func TestConcurrentAccess_Concurrency(t *testing.T) {
	key := make([]byte, crypto.KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	done := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		go func(id int) {
			text := fmt.Sprintf("test-%d", id)
			encrypted, err := crypto.Encrypt(text, key)
			if err != nil {
				t.Errorf("Concurrent encryption %d failed: %v", id, err)
			}
			decrypted, err := crypto.Decrypt(encrypted, key)
			if err != nil {
				t.Errorf("Concurrent decryption %d failed: %v", id, err)
			}
			if decrypted != text {
				t.Errorf("Concurrent round-trip %d mismatch", id)
			}
			done <- true
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}

// Many keys at once exercise the schedule cache under contention.
func TestConcurrentEncrypt_ManyKeys(t *testing.T) {
	const workers = 32

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			key := bytes.Repeat([]byte{byte(id)}, 16+8*(id%3))
			for j := 0; j < 20; j++ {
				msg := []byte(fmt.Sprintf("worker %d message %d", id, j))
				enc, err := crypto.EncryptBytes(msg, key)
				if err != nil {
					t.Errorf("worker %d: EncryptBytes error: %v", id, err)
					return
				}
				dec, err := crypto.DecryptBytes(enc, key)
				if err != nil {
					t.Errorf("worker %d: DecryptBytes error: %v", id, err)
					return
				}
				if !bytes.Equal(dec, msg) {
					t.Errorf("worker %d: round trip mismatch", id)
					return
				}
			}
		}(w)
	}
	wg.Wait()
}

func TestConcurrentHMACAndHash(t *testing.T) {
	key := []byte("shared-hmac-key")
	msg := []byte("shared message")
	wantMAC, _ := crypto.HMAC(key, msg, crypto.ModeSHA384)
	wantSum := crypto.Sum512(msg)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				mac, err := crypto.HMAC(key, msg, crypto.ModeSHA384)
				if err != nil || !bytes.Equal(mac, wantMAC) {
					t.Errorf("concurrent HMAC mismatch: %v", err)
					return
				}
				if crypto.Sum512(msg) != wantSum {
					t.Error("concurrent Sum512 mismatch")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestConcurrentDeriveKey(t *testing.T) {
	params := &crypto.KDFParams{Iterations: 20, Threads: 3}
	want, err := crypto.DeriveKey([]byte("pw"), []byte("salt"), 200, params)
	if err != nil {
		t.Fatalf("DeriveKey() error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := crypto.DeriveKey([]byte("pw"), []byte("salt"), 200, params)
			if err != nil || !bytes.Equal(got, want) {
				t.Errorf("concurrent DeriveKey mismatch: %v", err)
			}
		}()
	}
	wg.Wait()
}
