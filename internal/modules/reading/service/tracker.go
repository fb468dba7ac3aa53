package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"writerly/internal/modules/reading/domain"
	readingout "writerly/internal/modules/reading/port/out"
	"writerly/internal/platform/clock"
	apperrors "writerly/internal/platform/errors"
	"writerly/internal/platform/logging"
)

const DefaultInterval = 10 * time.Second

// Tracker drives one reading session: idle -> tracking -> completed.
// Progress pushes run on a single goroutine, so a slow update delays the
// next tick instead of overlapping it.
type Tracker struct {
	clock    clock.Clock
	gateway  readingout.Gateway
	history  readingout.HistoryStore
	logger   hclog.Logger
	interval time.Duration

	workID    string
	sectionID string

	mu        sync.Mutex
	started   bool
	stopped   bool
	state     domain.State
	sessionID string
	startedAt time.Time
	elapsed   int
	maxDepth  float64
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewTracker(clk clock.Clock, gateway readingout.Gateway, history readingout.HistoryStore, logger hclog.Logger, interval time.Duration, workID, sectionID string) *Tracker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Tracker{
		clock:     clk,
		gateway:   gateway,
		history:   history,
		logger:    logging.OrNull(logger).Named("reading").With("work_id", workID),
		interval:  interval,
		workID:    workID,
		sectionID: sectionID,
		state:     domain.StateIdle,
	}
}

// Start opens the server session once. Later calls are no-ops, and a
// failed start leaves the tracker idle.
func (t *Tracker) Start(ctx context.Context) {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return
	}
	t.started = true
	t.mu.Unlock()

	sessionID, err := t.gateway.Start(ctx, t.workID, t.sectionID)
	if err != nil {
		t.logger.Warn("start reading session failed", "error", err)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.state != domain.StateIdle {
		return
	}
	loopCtx, cancel := context.WithCancel(context.Background())
	t.state = domain.StateTracking
	t.sessionID = sessionID
	t.startedAt = t.clock.Now()
	t.cancel = cancel
	t.done = make(chan struct{})
	ticker := t.clock.NewTicker(t.interval)
	go t.loop(loopCtx, ticker, t.done)
	t.logger.Debug("reading session started", "session_id", sessionID)
}

func (t *Tracker) loop(ctx context.Context, ticker clock.Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			t.push(ctx)
		}
	}
}

func (t *Tracker) push(ctx context.Context) {
	t.mu.Lock()
	if t.state != domain.StateTracking {
		t.mu.Unlock()
		return
	}
	now := t.clock.Now()
	sessionID := t.sessionID
	progress := domain.Progress{
		TimeOnPage:  secondsSince(t.startedAt, now),
		ScrollDepth: t.maxDepth,
		ScrollEvent: now,
	}
	t.mu.Unlock()

	if err := t.gateway.Update(ctx, sessionID, progress); err != nil {
		if ctx.Err() != nil {
			return
		}
		t.logger.Warn("push reading progress failed", "session_id", sessionID, "error", err)
	}
}

// ReportScroll keeps the deepest position seen while tracking.
func (t *Tracker) ReportScroll(depth float64) {
	depth = domain.ClampDepth(depth)
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != domain.StateTracking {
		return
	}
	if depth > t.maxDepth {
		t.maxDepth = depth
	}
}

func (t *Tracker) Complete(ctx context.Context) (domain.Unlocks, error) {
	t.mu.Lock()
	if t.state != domain.StateTracking {
		t.mu.Unlock()
		return domain.Unlocks{}, apperrors.ErrNotTracking
	}
	sessionID := t.sessionID
	t.mu.Unlock()

	unlocks, err := t.gateway.Complete(ctx, sessionID)
	if err != nil {
		return domain.Unlocks{}, fmt.Errorf("complete reading session: %w", err)
	}

	t.mu.Lock()
	now := t.clock.Now()
	t.elapsed = secondsSince(t.startedAt, now)
	t.state = domain.StateCompleted
	entry := domain.HistoryEntry{
		SessionID:   sessionID,
		WorkID:      t.workID,
		SectionID:   t.sectionID,
		StartedAt:   t.startedAt,
		CompletedAt: now,
		TimeOnPage:  t.elapsed,
		ScrollDepth: t.maxDepth,
	}
	t.mu.Unlock()
	t.stopLoop()

	if t.history != nil {
		if err := t.history.Record(ctx, entry); err != nil {
			t.logger.Warn("record reading history failed", "session_id", sessionID, "error", err)
		}
	}
	return unlocks, nil
}

// Stop releases the ticker goroutine and waits for it. Safe to call more
// than once.
func (t *Tracker) Stop() {
	t.mu.Lock()
	t.started = true
	t.stopped = true
	if t.state == domain.StateTracking {
		t.elapsed = secondsSince(t.startedAt, t.clock.Now())
		t.state = domain.StateIdle
	}
	t.mu.Unlock()
	t.stopLoop()
}

func (t *Tracker) stopLoop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (t *Tracker) Metrics() domain.Metrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	elapsed := t.elapsed
	if t.state == domain.StateTracking {
		elapsed = secondsSince(t.startedAt, t.clock.Now())
	}
	return domain.Metrics{
		SessionID:   t.sessionID,
		TimeOnPage:  elapsed,
		ScrollDepth: t.maxDepth,
		State:       t.state,
	}
}

func secondsSince(start, now time.Time) int {
	if start.IsZero() || now.Before(start) {
		return 0
	}
	return int(now.Sub(start) / time.Second)
}
