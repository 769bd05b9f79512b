package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	// ErrInvalidCredentials is returned for an unknown username and for a
	// wrong password alike.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthorized is returned when a token, its session or its user is
	// missing, expired or invalid.
	ErrUnauthorized        = errors.New("unauthorized")
	ErrTokenCreationFailed = errors.New("token creation failed")

	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")

	ErrFileRequired    = errors.New("file is required")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileNotFound    = errors.New("file not found")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
