package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-image-keeper/internal/config"
	"github.com/MKhiriev/go-image-keeper/internal/logger"
)

// Storages aggregates every persistence component of the server.
type Storages struct {
	UserRepository    UserRepository
	SessionRepository SessionRepository
	FileStorage       FileStorage

	db *DB
}

// NewStorages connects to the configured database, applies migrations and
// constructs the repositories together with the configured file storage.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewDB(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err = db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	fileStorage, err := NewFileStorage(ctx, cfg.Files, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		SessionRepository: NewSessionRepository(db, log),
		FileStorage:       fileStorage,
		db:                db,
	}, nil
}

// NewFileStorage builds the [FileStorage] selected by cfg.Backend.
func NewFileStorage(ctx context.Context, cfg config.Files, log *logger.Logger) (FileStorage, error) {
	switch cfg.Backend {
	case config.BackendLocal:
		return NewLocalFileStorage(cfg.UploadDir, log), nil
	case config.BackendS3:
		return NewS3FileStorage(ctx, cfg.S3, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, cfg.Backend)
	}
}

// Close releases the database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}
