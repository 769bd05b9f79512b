package crypto

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// Werkzeug defaults used when the method string omits parameters.
const (
	werkzeugPBKDF2Iterations = 600000
	werkzeugScryptN          = 1 << 15
	werkzeugScryptR          = 8
	werkzeugScryptP          = 1
)

// splitWerkzeug splits "method$salt$hexhash".
func splitWerkzeug(encoded string) (method, salt string, want []byte, err error) {
	parts := strings.SplitN(encoded, "$", 3)
	if len(parts) != 3 {
		return "", "", nil, fmt.Errorf("%w: werkzeug: expected method$salt$hash", ErrMalformedHash)
	}

	want, err = hex.DecodeString(parts[2])
	if err != nil || len(want) == 0 {
		return "", "", nil, fmt.Errorf("%w: werkzeug: bad hex digest", ErrMalformedHash)
	}

	return parts[0], parts[1], want, nil
}

// comparePBKDF2 verifies "pbkdf2:<digest>[:<iterations>]$salt$hex".
func comparePBKDF2(encoded, password string) (bool, error) {
	method, salt, want, err := splitWerkzeug(encoded)
	if err != nil {
		return false, err
	}

	params := strings.Split(method, ":")
	if len(params) < 2 || len(params) > 3 {
		return false, fmt.Errorf("%w: pbkdf2 method %q", ErrMalformedHash, method)
	}

	var newHash func() hash.Hash
	switch params[1] {
	case "sha256":
		newHash = sha256.New
	case "sha512":
		newHash = sha512.New
	case "sha1":
		newHash = sha1.New
	default:
		return false, fmt.Errorf("%w: pbkdf2 digest %q", ErrUnknownHashFormat, params[1])
	}

	iterations := werkzeugPBKDF2Iterations
	if len(params) == 3 {
		iterations, err = strconv.Atoi(params[2])
		if err != nil || iterations < 1 {
			return false, fmt.Errorf("%w: pbkdf2 iterations %q", ErrMalformedHash, params[2])
		}
	}

	got := pbkdf2.Key([]byte(password), []byte(salt), iterations, len(want), newHash)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// compareScrypt verifies "scrypt[:<n>:<r>:<p>]$salt$hex".
func compareScrypt(encoded, password string) (bool, error) {
	method, salt, want, err := splitWerkzeug(encoded)
	if err != nil {
		return false, err
	}

	n, r, p := werkzeugScryptN, werkzeugScryptR, werkzeugScryptP
	params := strings.Split(method, ":")
	switch len(params) {
	case 1:
	case 4:
		values := make([]int, 3)
		for i, s := range params[1:] {
			if values[i], err = strconv.Atoi(s); err != nil {
				return false, fmt.Errorf("%w: scrypt params %q", ErrMalformedHash, method)
			}
		}
		n, r, p = values[0], values[1], values[2]
	default:
		return false, fmt.Errorf("%w: scrypt method %q", ErrMalformedHash, method)
	}

	got, err := scrypt.Key([]byte(password), []byte(salt), n, r, p, len(want))
	if err != nil {
		return false, fmt.Errorf("%w: scrypt: %v", ErrMalformedHash, err)
	}

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
