package service

import (
	"context"

	"github.com/MKhiriev/go-image-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService verifies credentials and manages login sessions.
type AuthService interface {
	// Login checks the credentials and opens a new session. The returned
	// session carries the signed token in Token.
	Login(ctx context.Context, username, password string) (models.Session, error)
	// Logout destroys the session. Unknown sessions are ignored.
	Logout(ctx context.Context, sessionID string) error
	// Authenticate resolves a session token to its user and session.
	Authenticate(ctx context.Context, token string) (models.User, models.Session, error)
	// LoadUser resolves a user id stored in a session to the user profile.
	LoadUser(ctx context.Context, userID int64) (models.User, error)

	CreateUser(ctx context.Context, username, password string) (models.User, error)
	SetPassword(ctx context.Context, username, password string) error

	// PurgeExpiredSessions deletes expired sessions and returns their number.
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// FileService validates, stores and lists uploaded images.
type FileService interface {
	Upload(ctx context.Context, upload models.FileUpload) (models.StoredFile, error)
	List(ctx context.Context) ([]models.StoredFile, error)
	Open(ctx context.Context, name string) (models.FileObject, error)
}

// AppInfoService exposes static application information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetAboutName(ctx context.Context) string
}
