package models

import "time"

// User is the account profile used for authentication.
// Accounts are provisioned out of band; the web application only reads them.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is never exposed outside the server and is immutable.
	UserID int64 `json:"-"`

	// Username uniquely identifies at most one account.
	Username string `json:"username"`

	// PasswordHash is the encoded salted hash of the user's password
	// (e.g. "$argon2id$v=19$..."). It MUST never hold plaintext and is
	// never serialized.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was provisioned.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "user_profiles"
}
