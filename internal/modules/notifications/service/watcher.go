package service

import (
	"context"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"writerly/internal/platform/clock"
	"writerly/internal/platform/logging"
)

const DefaultPollInterval = 30 * time.Second

// CountFunc fetches the current unread count.
type CountFunc func(ctx context.Context) (int, error)

// Watcher polls the unread count on a ticker. Polls run one at a time on
// the calling goroutine.
type Watcher struct {
	clock    clock.Clock
	interval time.Duration
	count    CountFunc
	logger   hclog.Logger
}

func NewWatcher(clk clock.Clock, interval time.Duration, count CountFunc, logger hclog.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Watcher{clock: clk, interval: interval, count: count, logger: logging.OrNull(logger).Named("notifications")}
}

// Run polls once immediately, then every interval, until ctx is done.
// Failed polls are logged and skipped.
func (w *Watcher) Run(ctx context.Context, fn func(count int)) error {
	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()

	w.poll(ctx, fn)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
			w.poll(ctx, fn)
		}
	}
}

func (w *Watcher) poll(ctx context.Context, fn func(int)) {
	count, err := w.count(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Warn("poll unread count failed", "error", err)
		}
		return
	}
	fn(count)
}
