// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-image-keeper/internal/logger"
	"github.com/MKhiriev/go-image-keeper/internal/service"
)

// SessionCleanupWorker periodically deletes expired login sessions.
type SessionCleanupWorker struct {
	authService service.AuthService
	interval    time.Duration
	logger      *logger.Logger
}

func NewSessionCleanupWorker(authService service.AuthService, interval time.Duration, logger *logger.Logger) *SessionCleanupWorker {
	return &SessionCleanupWorker{
		authService: authService,
		interval:    interval,
		logger:      logger,
	}
}

// Run purges once immediately and then on every tick until ctx is cancelled.
// Failures are logged and retried on the next tick.
func (w *SessionCleanupWorker) Run(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("session cleanup worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.purge(ctx)

		select {
		case <-ctx.Done():
			w.logger.Info().Msg("session cleanup worker stopped")
			return
		case <-ticker.C:
		}
	}
}

func (w *SessionCleanupWorker) purge(ctx context.Context) {
	deleted, err := w.authService.PurgeExpiredSessions(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Err(err).Msg("expired session cleanup failed")
		}
		return
	}

	if deleted > 0 {
		w.logger.Info().Int64("deleted", deleted).Msg("expired sessions deleted")
	}
}
