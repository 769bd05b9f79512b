// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is a server-side login session.
//
// A session row exists only after a successful credential check and is
// removed on logout or once ExpiresAt has passed. The client only ever holds
// Token, a signed reference to the row.
type Session struct {
	// ID is the session identifier (UUIDv7). It is embedded into the token
	// as the "jti" claim.
	ID string `json:"-"`

	// UserID references the authenticated [User].
	UserID int64 `json:"-"`

	// CreatedAt is the moment the session was established.
	CreatedAt time.Time `json:"-"`

	// ExpiresAt is the moment after which the session is no longer valid.
	ExpiresAt time.Time `json:"-"`

	// Token is the signed cookie value issued to the client.
	// It is never persisted.
	Token string `json:"-"`
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}
