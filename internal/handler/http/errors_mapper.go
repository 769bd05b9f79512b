package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-image-keeper/internal/service"
	"github.com/MKhiriev/go-image-keeper/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:   http.StatusBadRequest,
	service.ErrFileRequired:          http.StatusBadRequest,
	service.ErrUnsupportedType:       http.StatusBadRequest,
	service.ErrInvalidCredentials:    http.StatusUnauthorized,
	service.ErrUnauthorized:          http.StatusUnauthorized,
	service.ErrFileNotFound:          http.StatusNotFound,
	service.ErrUserAlreadyExists:     http.StatusConflict,
	service.ErrUserNotFound:          http.StatusNotFound,
	service.ErrTokenCreationFailed:   http.StatusInternalServerError,
	service.ErrVersionIsNotSpecified: http.StatusInternalServerError,

	errRequestTooLarge:    http.StatusRequestEntityTooLarge,
	errCrossOriginRequest: http.StatusForbidden,

	store.ErrFileNotFound:     http.StatusNotFound,
	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
