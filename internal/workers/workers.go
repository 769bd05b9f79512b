package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-image-keeper/internal/config"
	"github.com/MKhiriev/go-image-keeper/internal/logger"
	"github.com/MKhiriev/go-image-keeper/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the background workers enabled in cfg. A zero session
// cleanup interval disables the cleanup worker.
func NewWorkers(services *service.Services, cfg config.Workers, logger *logger.Logger) *Workers {
	ws := &Workers{}

	if cfg.SessionCleanupInterval > 0 {
		ws.workers = append(ws.workers, NewSessionCleanupWorker(services.AuthService, cfg.SessionCleanupInterval, logger))
	}

	return ws
}

// Run starts every worker in its own goroutine and waits for all of them to
// return.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() {
			worker.Run(ctx)
		})
	}
	wg.Wait()
}
