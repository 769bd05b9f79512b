package crypto

import "errors"

var (
	// ErrUnknownHashFormat is returned for encoded hashes of an unsupported algorithm.
	ErrUnknownHashFormat = errors.New("unknown password hash format")
	// ErrMalformedHash is returned when an encoded hash cannot be parsed.
	ErrMalformedHash = errors.New("malformed password hash")
)
