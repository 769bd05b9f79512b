package http

import (
	"time"

	"github.com/MKhiriev/go-image-keeper/internal/config"
	"github.com/MKhiriev/go-image-keeper/internal/logger"
	"github.com/MKhiriev/go-image-keeper/internal/service"
	"github.com/MKhiriev/go-image-keeper/internal/view"
)

type Handler struct {
	services *service.Services
	views    view.Renderer
	flashes  *flashStore

	requestTimeout time.Duration
	maxUploadSize  int64
	secureCookies  bool
	protectUploads bool

	logger *logger.Logger
}

func NewHandler(services *service.Services, views view.Renderer, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		views:          views,
		flashes:        newFlashStore(cfg.App.HashKey, cfg.Server.SecureCookies),
		requestTimeout: cfg.Server.RequestTimeout,
		maxUploadSize:  cfg.Server.MaxUploadSize,
		secureCookies:  cfg.Server.SecureCookies,
		protectUploads: cfg.Server.ProtectUploads,
		logger:         logger,
	}
}
