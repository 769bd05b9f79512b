package service

import (
	"context"

	"github.com/MKhiriev/go-image-keeper/internal/config"
	"github.com/MKhiriev/go-image-keeper/internal/logger"
)

// appInfoService serves the static facts shown on /version and the about page.
type appInfoService struct {
	appVersion string
	aboutName  string

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		aboutName:  cfg.AboutName,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

// GetAboutName returns the name introduced on the about page.
func (s *appInfoService) GetAboutName(ctx context.Context) string {
	return s.aboutName
}
