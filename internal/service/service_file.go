// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/go-image-keeper/internal/config"
	"github.com/MKhiriev/go-image-keeper/internal/logger"
	"github.com/MKhiriev/go-image-keeper/internal/store"
	"github.com/MKhiriev/go-image-keeper/internal/utils"
	"github.com/MKhiriev/go-image-keeper/models"
)

// fileService implements [FileService] on top of a [store.FileStorage].
// One extension set gates both uploads and listing.
type fileService struct {
	storage           store.FileStorage
	allowedExtensions map[string]struct{}
	logger            *logger.Logger
}

// NewFileService constructs a [FileService]. Extensions are matched
// case-insensitively; a leading dot in the configuration is ignored.
func NewFileService(storage store.FileStorage, cfg config.Files, logger *logger.Logger) FileService {
	allowed := make(map[string]struct{}, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			allowed[ext] = struct{}{}
		}
	}

	return &fileService{
		storage:           storage,
		allowedExtensions: allowed,
		logger:            logger,
	}
}

// Upload validates the submission, sanitizes its name and stores it.
//
// Returns:
//   - ErrFileRequired if no file or no filename was submitted.
//   - ErrUnsupportedType if the extension is not allowed, before or after
//     sanitization, or if nothing of the name survives sanitization.
func (s *fileService) Upload(ctx context.Context, upload models.FileUpload) (models.StoredFile, error) {
	log := logger.FromContext(ctx)

	if upload.Content == nil || upload.Filename == "" {
		return models.StoredFile{}, ErrFileRequired
	}

	if !s.allowed(upload.Filename) {
		return models.StoredFile{}, ErrUnsupportedType
	}

	name := utils.SecureFilename(upload.Filename)
	if name == "" || !s.allowed(name) {
		return models.StoredFile{}, ErrUnsupportedType
	}

	stored, err := s.storage.Save(ctx, name, upload.Content)
	if err != nil {
		return models.StoredFile{}, fmt.Errorf("error saving uploaded file: %w", err)
	}

	log.Info().Str("file", stored.Name).Int64("size", stored.Size).Msg("file uploaded")
	return stored, nil
}

// List returns the stored images with an allowed extension sorted by name.
// The result is never nil.
func (s *fileService) List(ctx context.Context) ([]models.StoredFile, error) {
	all, err := s.storage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}

	files := make([]models.StoredFile, 0, len(all))
	for _, f := range all {
		if s.allowed(f.Name) {
			files = append(files, f)
		}
	}

	slices.SortFunc(files, func(a, b models.StoredFile) int {
		return strings.Compare(a.Name, b.Name)
	})

	return files, nil
}

// Open returns a stored image for serving. Names that are not in sanitized
// form or lack an allowed extension are reported as ErrFileNotFound.
func (s *fileService) Open(ctx context.Context, name string) (models.FileObject, error) {
	if name == "" || utils.SecureFilename(name) != name || !s.allowed(name) {
		return models.FileObject{}, ErrFileNotFound
	}

	obj, err := s.storage.Open(ctx, name)
	if errors.Is(err, store.ErrFileNotFound) {
		return models.FileObject{}, ErrFileNotFound
	}
	if err != nil {
		return models.FileObject{}, fmt.Errorf("error opening file: %w", err)
	}

	return obj, nil
}

func (s *fileService) allowed(name string) bool {
	_, ok := s.allowedExtensions[utils.FileExtension(name)]
	return ok
}
