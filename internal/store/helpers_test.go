package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-image-keeper/internal/config"
	"github.com/MKhiriev/go-image-keeper/internal/logger"
	"github.com/jackc/pgx/v5/pgconn"
)

func newTestDB(t *testing.T, driver string) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	var classifier ErrorClassificator = NewPostgresErrorClassifier()
	if driver == config.DriverSQLite {
		classifier = NewSQLiteErrorClassifier()
	}

	return newDB(conn, driver, classifier, logger.Nop()), mock
}

func newTestUserRepo(t *testing.T, driver string) (*userRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t, driver)
	return &userRepository{db: db, logger: logger.Nop()}, mock
}

func newTestSessionRepo(t *testing.T) (*sessionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t, config.DriverPostgres)
	return &sessionRepository{db: db, logger: logger.Nop()}, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}
