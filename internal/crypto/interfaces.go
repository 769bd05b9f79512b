package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plaintext passwords into encoded salted one-way
// hashes and verifies candidates against them.
//
// Encoded hashes are self-describing: the algorithm and its parameters are
// stored next to the salt, so rows written by older deployments keep
// verifying after the default algorithm changes.
//
// Supported encodings:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>   (default for Hash)
//	$2a$10$...                                    (bcrypt)
//	pbkdf2:sha256:600000$<salt>$<hex>             (werkzeug)
//	scrypt:32768:8:1$<salt>$<hex>                 (werkzeug)
type PasswordHasher interface {
	// Hash returns the encoded hash of password using the default algorithm
	// and a fresh random salt.
	Hash(password string) (string, error)

	// Compare reports whether password matches the encoded hash.
	// A mismatch is reported as (false, nil). An error means the encoded
	// hash is malformed or uses an unknown algorithm.
	Compare(encoded, password string) (bool, error)

	// DummyCompare burns roughly the same time as a real Compare.
	// It is called when the user does not exist.
	DummyCompare(password string)
}
