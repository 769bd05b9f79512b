package handler

import (
	"fmt"

	"github.com/MKhiriev/go-image-keeper/internal/config"
	"github.com/MKhiriev/go-image-keeper/internal/handler/http"
	"github.com/MKhiriev/go-image-keeper/internal/logger"
	"github.com/MKhiriev/go-image-keeper/internal/service"
	"github.com/MKhiriev/go-image-keeper/internal/view"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	views, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("error loading page templates: %w", err)
	}

	return &Handlers{
		HTTP: http.NewHandler(services, views, cfg, logger),
	}, nil
}
