package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-image-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the credential store: it persists user profiles and
// looks them up by username or ID.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}

// SessionRepository persists login sessions. A row in the session table is
// the authoritative marker of a logged-in client.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) error
	FindSession(ctx context.Context, sessionID string) (models.Session, error)
	// DeleteSession removes the session. Deleting a missing session is not an error.
	DeleteSession(ctx context.Context, sessionID string) error
	// DeleteExpiredSessions removes every session whose expiry is not after now
	// and returns the number of removed rows.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// FileStorage keeps uploaded images under flat, already sanitized names.
type FileStorage interface {
	// Save writes content under name, replacing any existing file.
	// A failed Save never leaves a partial file behind.
	Save(ctx context.Context, name string, content io.Reader) (models.StoredFile, error)
	// List returns every stored file. A missing storage location yields an
	// empty slice.
	List(ctx context.Context) ([]models.StoredFile, error)
	// Open returns the file for reading. The caller closes Body.
	// Unknown names yield [ErrFileNotFound].
	Open(ctx context.Context, name string) (models.FileObject, error)
}
