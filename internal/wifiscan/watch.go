package wifiscan

import (
	"context"
	"time"

	"github.com/hsylva/sozin/pkg/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// minScanSpacing is the floor between two scan triggers regardless of the
// configured interval. Drivers abort scans that arrive back to back.
const minScanSpacing = 5 * time.Second

// Watcher repeatedly scans on a fixed interval and delivers each result to
// a callback. Scan errors are logged and the loop continues.
type Watcher struct {
	scanner  NetworkScanner
	interval time.Duration
	limiter  *rate.Limiter
	logger   *zap.Logger
}

// NewWatcher creates a Watcher around the given scanner.
func NewWatcher(scanner NetworkScanner, interval time.Duration, logger *zap.Logger) *Watcher {
	if interval < minScanSpacing {
		interval = minScanSpacing
	}
	return &Watcher{
		scanner:  scanner,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(minScanSpacing), 1),
		logger:   logger,
	}
}

// Run scans until the context is canceled. The first scan happens
// immediately; subsequent scans follow the interval.
func (w *Watcher) Run(ctx context.Context, deliver func([]models.WifiNetworkRecord)) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.limiter.Wait(ctx); err != nil {
			return err
		}

		networks, err := w.scanner.Scan(ctx)
		if err != nil {
			w.logger.Warn("scan failed, will retry", zap.Error(err))
		} else {
			deliver(networks)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
