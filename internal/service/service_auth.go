package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-image-keeper/internal/config"
	"github.com/MKhiriev/go-image-keeper/internal/crypto"
	"github.com/MKhiriev/go-image-keeper/internal/logger"
	"github.com/MKhiriev/go-image-keeper/internal/store"
	"github.com/MKhiriev/go-image-keeper/internal/utils"
	"github.com/MKhiriev/go-image-keeper/models"
)

// maxUsernameLength matches the user_profiles.username column.
const maxUsernameLength = 80

// authService is the concrete implementation of AuthService.
// It verifies credentials against the user repository, keeps sessions in
// the session repository and hands out signed tokens referencing them.
type authService struct {
	userRepository    store.UserRepository
	sessionRepository store.SessionRepository
	hasher            crypto.PasswordHasher
	ids               *utils.UUIDGenerator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration is the lifetime of a session and of its token.
	tokenDuration time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService populated with the session
// parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	userRepository store.UserRepository,
	sessionRepository store.SessionRepository,
	hasher crypto.PasswordHasher,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
		hasher:            hasher,
		ids:               utils.NewUUIDGenerator(),
		tokenSignKey:      cfg.TokenSignKey,
		tokenIssuer:       cfg.TokenIssuer,
		tokenDuration:     cfg.TokenDuration,
		now:               time.Now,
		logger:            logger,
	}
}

// Login authenticates a user and opens a session.
//
// Returns the new session (with Token set) or:
//   - ErrInvalidDataProvided if username or password is empty.
//   - ErrInvalidCredentials if the user does not exist or the password does
//     not match. Both cases take comparable time.
//   - ErrTokenCreationFailed if the token cannot be signed.
func (a *authService) Login(ctx context.Context, username, password string) (models.Session, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		return models.Session{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNoUserWasFound) {
		a.hasher.DummyCompare(password)
		log.Info().Msg("login attempt for unknown user")
		return models.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("user search by username failed: %w", err)
	}

	ok, err := a.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("stored password hash cannot be verified")
		return models.Session{}, ErrInvalidCredentials
	}
	if !ok {
		log.Info().Int64("id", user.UserID).Msg("wrong password")
		return models.Session{}, ErrInvalidCredentials
	}

	now := a.now()
	session := models.Session{
		ID:        a.ids.Generate(),
		UserID:    user.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(a.tokenDuration),
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, session.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	if err = a.sessionRepository.CreateSession(ctx, session); err != nil {
		return models.Session{}, fmt.Errorf("session creation failed: %w", err)
	}

	session.Token = token.SignedString
	log.Info().Int64("id", user.UserID).Str("session", session.ID).Msg("user logged in")
	return session, nil
}

// Logout deletes the session row. An empty ID is a no-op.
func (a *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := a.sessionRepository.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("session deletion failed: %w", err)
	}

	return nil
}

// Authenticate verifies the token signature, then requires the referenced
// session to exist, belong to the token's user and be unexpired, and finally
// loads the user.
//
// All authentication failures are reported as ErrUnauthorized; storage
// failures are wrapped and returned as is.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.User, models.Session, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.User{}, models.Session{}, ErrUnauthorized
	}

	session, err := a.sessionRepository.FindSession(ctx, token.SessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		return models.User{}, models.Session{}, ErrUnauthorized
	}
	if err != nil {
		return models.User{}, models.Session{}, fmt.Errorf("session lookup failed: %w", err)
	}

	if session.UserID != token.UserID || session.Expired(a.now()) {
		return models.User{}, models.Session{}, ErrUnauthorized
	}

	user, err := a.LoadUser(ctx, session.UserID)
	if err != nil {
		return models.User{}, models.Session{}, err
	}

	session.Token = tokenString
	return user, session, nil
}

// LoadUser returns the user for a session's user id. A user that no longer
// exists yields ErrUnauthorized.
func (a *authService) LoadUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, ErrUnauthorized
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return user, nil
}

// CreateUser provisions a new account with a freshly hashed password.
func (a *authService) CreateUser(ctx context.Context, username, password string) (models.User, error) {
	if username == "" || password == "" || len(username) > maxUsernameLength {
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{Username: username, PasswordHash: hash})
	if errors.Is(err, store.ErrUsernameAlreadyExists) {
		return models.User{}, ErrUserAlreadyExists
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return user, nil
}

// SetPassword replaces the password of an existing account.
func (a *authService) SetPassword(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrInvalidDataProvided
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("password hashing failed: %w", err)
	}

	err = a.userRepository.UpdatePassword(ctx, username, hash)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("password update failed: %w", err)
	}

	return nil
}

// PurgeExpiredSessions removes every session that has expired by now.
func (a *authService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	deleted, err := a.sessionRepository.DeleteExpiredSessions(ctx, a.now())
	if err != nil {
		return 0, fmt.Errorf("expired session cleanup failed: %w", err)
	}

	return deleted, nil
}
