package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/interaction-analytics/internal/events"
	"github.com/spec-kit/interaction-analytics/internal/persistence"
	"github.com/spec-kit/interaction-analytics/internal/service"
)

// StartRefreshWorker subscribes the redis dataset-version publisher to
// snapshot refreshes and, when an interval is configured, reloads the
// snapshot periodically until the context is cancelled.
func StartRefreshWorker(ctx context.Context, svc *service.AnalyticsService, dispatcher events.Dispatcher, redis *persistence.Redis, interval time.Duration, logger *zap.Logger) {
	dispatcher.Subscribe(events.EventSnapshotRefreshed, func(ctx context.Context, event events.Event) error {
		payload, ok := event.Payload.(events.SnapshotRefreshedPayload)
		if !ok {
			return nil
		}
		if err := redis.PublishDatasetVersion(ctx, payload.Version); err != nil {
			logger.Warn("publish dataset version", zap.Error(err))
		}
		return nil
	})

	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := svc.Refresh(ctx); err != nil {
					logger.Error("scheduled snapshot refresh failed", zap.Error(err))
				}
			}
		}
	}()
}
