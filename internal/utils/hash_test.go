// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

const testHashKey = "test-secret-key"

func TestHashString_MatchesHMAC(t *testing.T) {
	data := `[{"c":"success","m":"File uploaded successfully!"}]`

	got := HashString(data, testHashKey)

	mac := hmac.New(sha256.New, []byte(testHashKey))
	mac.Write([]byte(data))
	want := hex.EncodeToString(mac.Sum(nil))

	if got != want {
		t.Errorf("HashString mismatch:\n  got:  %s\n  want: %s", got, want)
	}
}

func TestHashString_DifferentKeys(t *testing.T) {
	if HashString("data", "key-one") == HashString("data", "key-two") {
		t.Error("different keys must produce different hashes for the same data")
	}
}

func TestHashString_Deterministic(t *testing.T) {
	if HashString("data", testHashKey) != HashString("data", testHashKey) {
		t.Error("same data must produce the same hash")
	}
}

func TestVerifyHashString(t *testing.T) {
	sig := HashString("payload", testHashKey)

	tests := []struct {
		name string
		data string
		sig  string
		key  string
		want bool
	}{
		{"valid", "payload", sig, testHashKey, true},
		{"tampered data", "payload!", sig, testHashKey, false},
		{"wrong key", "payload", sig, "other-key", false},
		{"not hex", "payload", "zz", testHashKey, false},
		{"empty signature", "payload", "", testHashKey, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyHashString(tt.data, tt.sig, tt.key); got != tt.want {
				t.Errorf("VerifyHashString() = %v, want %v", got, tt.want)
			}
		})
	}
}
