package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-image-keeper/internal/config"
	"github.com/MKhiriev/go-image-keeper/internal/service"
	"github.com/MKhiriev/go-image-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartUpload builds an authenticated POST /upload request. An empty
// filename omits the file part.
func multipartUpload(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		part, err := mw.CreateFormFile(uploadField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.WriteField("submit", "Upload"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return withSessionCookie(req)
}

// uploadServices returns services whose Upload behaves like the real
// validation for extensions and records what it received.
func uploadServices(received *models.FileUpload, body *[]byte) *service.Services {
	svcs := newTestServices()
	svcs.FileService = &stubFileService{
		uploadFn: func(_ context.Context, upload models.FileUpload) (models.StoredFile, error) {
			if upload.Content == nil || upload.Filename == "" {
				return models.StoredFile{}, service.ErrFileRequired
			}
			if !strings.HasSuffix(strings.ToLower(upload.Filename), ".png") {
				return models.StoredFile{}, service.ErrUnsupportedType
			}
			if received != nil {
				*received = upload
			}
			if body != nil {
				data, err := io.ReadAll(upload.Content)
				if err != nil {
					return models.StoredFile{}, err
				}
				*body = data
			}
			return models.StoredFile{Name: upload.Filename}, nil
		},
	}
	return svcs
}

func TestUploadForm(t *testing.T) {
	rec := serve(newTestHandler(t, newTestServices()), withSessionCookie(httptest.NewRequest(http.MethodGet, "/upload", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `enctype="multipart/form-data"`)
	assert.Contains(t, rec.Body.String(), "Upload Image")
}

func TestUpload_Success(t *testing.T) {
	var received models.FileUpload
	var content []byte
	h := newTestHandler(t, uploadServices(&received, &content))

	rec := serve(h, multipartUpload(t, "photo.PNG", []byte("\x89PNG-data")))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/upload", rec.Header().Get("Location"))
	assert.Equal(t, "photo.PNG", received.Filename)
	assert.Equal(t, int64(9), received.Size)
	assert.Equal(t, []byte("\x89PNG-data"), content)

	next := withSessionCookie(httptest.NewRequest(http.MethodGet, "/upload", nil))
	next.AddCookie(cookieFrom(rec, flashCookieName))
	assert.Contains(t, serve(h, next).Body.String(), "File uploaded successfully!")
}

func TestUpload_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     func(t *testing.T) *http.Request
		message string
	}{
		{
			name:    "no file part",
			req:     func(t *testing.T) *http.Request { return multipartUpload(t, "", nil) },
			message: "Please select a file to upload.",
		},
		{
			name:    "unsupported extension",
			req:     func(t *testing.T) *http.Request { return multipartUpload(t, "notes.txt", []byte("hi")) },
			message: "Only JPG and PNG files are allowed.",
		},
		{
			name: "not multipart",
			req: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("file=x.png"))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				return withSessionCookie(req)
			},
			message: "Please select a file to upload.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newTestHandler(t, uploadServices(nil, nil)), tt.req(t))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, `class="field-error">`+tt.message)
			assert.Contains(t, body, "Error in the Upload Image field - "+tt.message)
		})
	}
}

func TestUpload_TooLarge(t *testing.T) {
	var calls int
	svcs := newTestServices()
	svcs.FileService = &stubFileService{
		uploadFn: func(context.Context, models.FileUpload) (models.StoredFile, error) {
			calls++
			return models.StoredFile{}, nil
		},
	}
	h := newTestHandler(t, svcs, func(cfg *config.StructuredConfig) {
		cfg.Server.MaxUploadSize = 128
	})

	rec := serve(h, multipartUpload(t, "big.png", bytes.Repeat([]byte("a"), 4096)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Zero(t, calls)
}

func TestUpload_TooLargeChunked(t *testing.T) {
	var calls int
	svcs := newTestServices()
	svcs.FileService = &stubFileService{
		uploadFn: func(context.Context, models.FileUpload) (models.StoredFile, error) {
			calls++
			return models.StoredFile{}, nil
		},
	}
	h := newTestHandler(t, svcs, func(cfg *config.StructuredConfig) {
		cfg.Server.MaxUploadSize = 1024
	})

	req := multipartUpload(t, "big.png", bytes.Repeat([]byte("a"), 4096))
	req.ContentLength = -1
	rec := serve(h, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Zero(t, calls)
}

func TestUpload_StorageError(t *testing.T) {
	svcs := newTestServices()
	svcs.FileService = &stubFileService{
		uploadFn: func(context.Context, models.FileUpload) (models.StoredFile, error) {
			return models.StoredFile{}, errors.New("disk full")
		},
	}

	rec := serve(newTestHandler(t, svcs), multipartUpload(t, "a.png", []byte("x")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUpload_RequiresLogin(t *testing.T) {
	var calls int
	svcs := newTestServices()
	svcs.FileService = &stubFileService{
		uploadFn: func(context.Context, models.FileUpload) (models.StoredFile, error) {
			calls++
			return models.StoredFile{}, nil
		},
	}

	req := multipartUpload(t, "a.png", []byte("x"))
	req.Header.Del("Cookie")

	rec := serve(newTestHandler(t, svcs), req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Zero(t, calls)
}
