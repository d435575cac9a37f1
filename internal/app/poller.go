package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/rounal/internal/state"
	"github.com/five82/rounal/internal/systemd"
)

// maxBackoff caps the delay between failing refreshes.
const maxBackoff = 30 * time.Second

// catalogLoader is the part of systemd.Loader the refresher needs.
type catalogLoader interface {
	Load(ctx context.Context) (systemd.Catalog, error)
}

// StartPoller launches a background goroutine that reloads the service
// catalog every interval, backing off while loads fail. A non-positive
// interval disables polling. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, loader catalogLoader, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		return
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			_, _ = refresh(ctx, store, loader, logger)
			failures := store.Snapshot().ConsecutiveFailures
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff (or base, when base is already longer).
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	limit := max(maxBackoff, base)
	if failures >= 32 {
		return limit
	}
	backoff := base * time.Duration(1<<failures)
	if backoff <= 0 || backoff > limit {
		return limit
	}
	return backoff
}

// refresh loads the catalog once and records the outcome in store.
func refresh(ctx context.Context, store *state.Store, loader catalogLoader, logger *zap.Logger) (systemd.Catalog, error) {
	catalog, err := loader.Load(ctx)
	if err != nil {
		store.Update(nil, err)
		logger.Warn("catalog refresh failed", zap.Error(err))
		return systemd.Catalog{}, err
	}
	store.Update(&catalog, nil)
	logger.Debug("catalog refreshed",
		zap.Int("units", len(catalog.Units)),
		zap.Int("unit_files", len(catalog.UnitFiles)))
	return catalog, nil
}
