// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	argon2Version = argon2.Version

	// argon2MaxMemory caps the m= parameter (KiB) accepted from stored hashes.
	argon2MaxMemory = 1 << 20
)

// passwordHasher is the private implementation of [PasswordHasher].
type passwordHasher struct {
	// Argon2id tuning parameters.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
	saltLen      int

	// dummyHash is compared against when the user is unknown.
	dummyHash string
}

// NewPasswordHasher constructs a [PasswordHasher] with the Argon2id
// parameters recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewPasswordHasher() PasswordHasher {
	return newPasswordHasher(1, 64*1024, 4)
}

func newPasswordHasher(time, memory uint32, threads uint8) *passwordHasher {
	h := &passwordHasher{
		argonTime:    time,
		argonMemory:  memory,
		argonThreads: threads,
		argonKeyLen:  32,
		saltLen:      16,
	}

	// a fixed salt is fine here: the result is never matched successfully
	h.dummyHash = h.encodeArgon2([]byte("image-keeper-dummy-salt"), "image-keeper-dummy-password")
	return h
}

// Hash implements [PasswordHasher].
func (h *passwordHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}

	return h.encodeArgon2(salt, password), nil
}

// Compare implements [PasswordHasher]. The algorithm is picked from the
// prefix of encoded.
func (h *passwordHasher) Compare(encoded, password string) (bool, error) {
	switch {
	case strings.HasPrefix(encoded, "$argon2id$"):
		return compareArgon2(encoded, password)
	case strings.HasPrefix(encoded, "$2a$"), strings.HasPrefix(encoded, "$2b$"), strings.HasPrefix(encoded, "$2y$"):
		return compareBcrypt(encoded, password)
	case strings.HasPrefix(encoded, "pbkdf2:"):
		return comparePBKDF2(encoded, password)
	case strings.HasPrefix(encoded, "scrypt:"):
		return compareScrypt(encoded, password)
	}

	return false, ErrUnknownHashFormat
}

// DummyCompare implements [PasswordHasher].
func (h *passwordHasher) DummyCompare(password string) {
	_, _ = compareArgon2(h.dummyHash, password)
}

func (h *passwordHasher) encodeArgon2(salt []byte, password string) string {
	key := argon2.IDKey([]byte(password), salt, h.argonTime, h.argonMemory, h.argonThreads, h.argonKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Version, h.argonMemory, h.argonTime, h.argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

// compareArgon2 verifies a PHC formatted argon2id hash.
func compareArgon2(encoded, password string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("%w: argon2id: wrong number of sections", ErrMalformedHash)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("%w: argon2id version: %v", ErrMalformedHash, err)
	}
	if version != argon2Version {
		return false, fmt.Errorf("%w: argon2id: unsupported version %d", ErrMalformedHash, version)
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, fmt.Errorf("%w: argon2id params: %v", ErrMalformedHash, err)
	}
	if time < 1 || threads < 1 || memory > argon2MaxMemory {
		return false, fmt.Errorf("%w: argon2id params out of range: %s", ErrMalformedHash, parts[3])
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: argon2id salt: %v", ErrMalformedHash, err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false, fmt.Errorf("%w: argon2id key", ErrMalformedHash)
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func compareBcrypt(encoded, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case err == bcrypt.ErrMismatchedHashAndPassword:
		return false, nil
	default:
		return false, fmt.Errorf("%w: bcrypt: %v", ErrMalformedHash, err)
	}
}
