// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks that the merged [StructuredConfig] can be used to start
// the server.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.HashKey == "" {
		return fmt.Errorf("%w: token sign key and hash key are required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token issuer and positive token duration are required", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty http address", ErrInvalidServerConfigs)
	}
	if cfg.Server.MaxUploadSize <= 0 {
		return fmt.Errorf("%w: max upload size must be positive", ErrInvalidServerConfigs)
	}

	if cfg.Workers.SessionCleanupInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return cfg.Storage.validate()
}

func (s Storage) validate() error {
	switch s.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unsupported db driver %q", ErrInvalidStorageConfigs, s.DB.Driver)
	}
	if s.DB.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}

	switch s.Files.Backend {
	case BackendLocal:
		if strings.TrimSpace(s.Files.UploadDir) == "" {
			return fmt.Errorf("%w: empty upload dir", ErrInvalidStorageConfigs)
		}
	case BackendS3:
		if s.Files.S3.Bucket == "" || s.Files.S3.Region == "" {
			return fmt.Errorf("%w: s3 bucket and region are required", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unsupported files backend %q", ErrInvalidStorageConfigs, s.Files.Backend)
	}

	if len(s.Files.AllowedExtensions) == 0 {
		return fmt.Errorf("%w: no allowed extensions", ErrInvalidStorageConfigs)
	}

	return nil
}
