package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-image-keeper/internal/logger"
	"github.com/MKhiriev/go-image-keeper/internal/mock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestSessionCleanupWorker_PurgesUntilCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auth := mock.NewMockAuthService(ctrl)

	calls := make(chan struct{}, 16)
	auth.EXPECT().PurgeExpiredSessions(gomock.Any()).DoAndReturn(
		func(context.Context) (int64, error) {
			select {
			case calls <- struct{}{}:
			default:
			}
			return 2, nil
		},
	).MinTimes(2)

	w := NewSessionCleanupWorker(auth, 10*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	// one immediate purge plus at least one on a tick
	for range 2 {
		select {
		case <-calls:
		case <-time.After(time.Second):
			t.Fatal("purge was not called")
		}
	}

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
}

func TestSessionCleanupWorker_KeepsRunningAfterError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auth := mock.NewMockAuthService(ctrl)

	second := make(chan struct{})
	gomock.InOrder(
		auth.EXPECT().PurgeExpiredSessions(gomock.Any()).Return(int64(0), errors.New("database is locked")),
		auth.EXPECT().PurgeExpiredSessions(gomock.Any()).DoAndReturn(
			func(context.Context) (int64, error) {
				close(second)
				return 0, nil
			},
		),
		auth.EXPECT().PurgeExpiredSessions(gomock.Any()).Return(int64(0), nil).AnyTimes(),
	)

	w := NewSessionCleanupWorker(auth, 10*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	select {
	case <-second:
	case <-time.After(time.Second):
		t.Error("worker stopped after a failed purge")
	}

	cancel()
	<-done
}

func TestSessionCleanupWorker_CancelledBeforeStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auth := mock.NewMockAuthService(ctrl)
	auth.EXPECT().PurgeExpiredSessions(gomock.Any()).Return(int64(0), context.Canceled).Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewSessionCleanupWorker(auth, time.Hour, logger.Nop())

	finished := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("worker did not return for a cancelled context")
	}
	assert.Error(t, ctx.Err())
}
