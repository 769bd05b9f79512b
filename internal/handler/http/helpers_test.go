package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-image-keeper/internal/config"
	"github.com/MKhiriev/go-image-keeper/internal/logger"
	"github.com/MKhiriev/go-image-keeper/internal/service"
	"github.com/MKhiriev/go-image-keeper/internal/view"
	"github.com/MKhiriev/go-image-keeper/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Service stubs
// ─────────────────────────────────────────────

// stubAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type stubAuthService struct {
	loginFn        func(ctx context.Context, username, password string) (models.Session, error)
	logoutFn       func(ctx context.Context, sessionID string) error
	authenticateFn func(ctx context.Context, token string) (models.User, models.Session, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (models.Session, error) {
	if s.loginFn == nil {
		return models.Session{}, service.ErrInvalidCredentials
	}
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID string) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx, sessionID)
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (models.User, models.Session, error) {
	if s.authenticateFn == nil {
		return models.User{}, models.Session{}, service.ErrUnauthorized
	}
	return s.authenticateFn(ctx, token)
}

func (s *stubAuthService) LoadUser(context.Context, int64) (models.User, error) {
	return models.User{}, service.ErrUnauthorized
}

func (s *stubAuthService) CreateUser(context.Context, string, string) (models.User, error) {
	return models.User{}, nil
}

func (s *stubAuthService) SetPassword(context.Context, string, string) error {
	return nil
}

func (s *stubAuthService) PurgeExpiredSessions(context.Context) (int64, error) {
	return 0, nil
}

type stubFileService struct {
	uploadFn func(ctx context.Context, upload models.FileUpload) (models.StoredFile, error)
	listFn   func(ctx context.Context) ([]models.StoredFile, error)
	openFn   func(ctx context.Context, name string) (models.FileObject, error)
}

func (s *stubFileService) Upload(ctx context.Context, upload models.FileUpload) (models.StoredFile, error) {
	return s.uploadFn(ctx, upload)
}

func (s *stubFileService) List(ctx context.Context) ([]models.StoredFile, error) {
	if s.listFn == nil {
		return []models.StoredFile{}, nil
	}
	return s.listFn(ctx)
}

func (s *stubFileService) Open(ctx context.Context, name string) (models.FileObject, error) {
	if s.openFn == nil {
		return models.FileObject{}, service.ErrFileNotFound
	}
	return s.openFn(ctx, name)
}

type stubAppInfoService struct {
	version string
	about   string
}

func (s *stubAppInfoService) GetAppVersion(context.Context) string { return s.version }
func (s *stubAppInfoService) GetAboutName(context.Context) string  { return s.about }

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const validToken = "valid-token"

var alice = models.User{UserID: 1, Username: "alice"}

// aliceSession accepts validToken as alice's session cookie.
func aliceSession(_ context.Context, token string) (models.User, models.Session, error) {
	if token != validToken {
		return models.User{}, models.Session{}, service.ErrUnauthorized
	}
	return alice, models.Session{ID: "sid-1", UserID: alice.UserID, Token: token}, nil
}

func testConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		App:    config.App{HashKey: "flash-test-key"},
		Server: config.Server{HTTPAddress: ":0", MaxUploadSize: 1 << 20},
	}
}

// newTestServices returns services with every stub set; fields can be
// replaced by the caller.
func newTestServices() *service.Services {
	return &service.Services{
		AuthService:    &stubAuthService{authenticateFn: aliceSession},
		FileService:    &stubFileService{},
		AppInfoService: &stubAppInfoService{version: "test-version", about: "Mary Jane"},
	}
}

func newTestHandler(t *testing.T, services *service.Services, opts ...func(*config.StructuredConfig)) *Handler {
	t.Helper()
	cfg := testConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	views, err := view.NewRenderer()
	require.NoError(t, err)

	return NewHandler(services, views, cfg, logger.Nop())
}

// serve runs req through the full router.
func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func withSessionCookie(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: validToken})
	return req
}

// cookieFrom returns the cookie set by a response, or nil.
func cookieFrom(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// seekableBody is a FileObject body supporting io.Seeker.
type seekableBody struct {
	*bytes.Reader
	closed bool
}

func (b *seekableBody) Close() error {
	b.closed = true
	return nil
}

// streamBody is a FileObject body without io.Seeker.
type streamBody struct {
	io.Reader
}

func (streamBody) Close() error { return nil }
