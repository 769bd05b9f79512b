package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString signs data with HMAC-SHA256 under hashKey and returns the hex
// digest. The flash cookie value is protected this way:
//
//	value := payload + "." + utils.HashString(payload, key)
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(sign([]byte(data), []byte(hashKey)))
}

// VerifyHashString reports whether signature is the hex-encoded HMAC-SHA256
// of data under hashKey. The comparison runs in constant time.
func VerifyHashString(data, signature, hashKey string) bool {
	want, err := hex.DecodeString(signature)
	if err != nil || len(want) != sha256.Size {
		return false
	}

	return hmac.Equal(want, sign([]byte(data), []byte(hashKey)))
}

func sign(data, key []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}
