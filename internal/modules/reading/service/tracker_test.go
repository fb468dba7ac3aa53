package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"writerly/internal/modules/reading/domain"
	"writerly/internal/modules/reading/service"
	"writerly/internal/platform/clock"
	apperrors "writerly/internal/platform/errors"
)

type fakeTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }

func (t *fakeTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *fakeTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

type fakeClock struct {
	mu       sync.Mutex
	now      time.Time
	tickers  []*fakeTicker
	interval time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) NewTicker(d time.Duration) clock.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTicker{ch: make(chan time.Time)}
	c.tickers = append(c.tickers, t)
	c.interval = d
	return t
}

func (c *fakeClock) ticker(t *testing.T) *fakeTicker {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.tickers) != 1 {
		t.Fatalf("expected exactly one ticker, got %d", len(c.tickers))
	}
	return c.tickers[0]
}

type update struct {
	sessionID string
	progress  domain.Progress
}

type fakeGateway struct {
	mu        sync.Mutex
	starts    int
	startErr  error
	updateErr error
	updates   chan update
	completes int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{updates: make(chan update, 8)}
}

func (g *fakeGateway) Start(context.Context, string, string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.starts++
	if g.startErr != nil {
		return "", g.startErr
	}
	return "s1", nil
}

func (g *fakeGateway) Update(_ context.Context, sessionID string, progress domain.Progress) error {
	g.updates <- update{sessionID: sessionID, progress: progress}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.updateErr
}

func (g *fakeGateway) Complete(context.Context, string) (domain.Unlocks, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.completes++
	return domain.Unlocks{CanComment: true, CanRate: true, Message: "unlocked"}, nil
}

func (g *fakeGateway) Validation(context.Context, string) (domain.Unlocks, error) {
	return domain.Unlocks{}, nil
}

type fakeHistory struct {
	mu      sync.Mutex
	entries []domain.HistoryEntry
}

func (h *fakeHistory) Record(_ context.Context, entry domain.HistoryEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, entry)
	return nil
}

func (h *fakeHistory) List(context.Context, int) ([]domain.HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]domain.HistoryEntry(nil), h.entries...), nil
}

func newTracker(gw *fakeGateway, history *fakeHistory) (*service.Tracker, *fakeClock) {
	clk := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return service.NewTracker(clk, gw, history, nil, 0, "w1", ""), clk
}

func tick(t *testing.T, clk *fakeClock, gw *fakeGateway) update {
	t.Helper()
	ticker := clk.ticker(t)
	select {
	case ticker.ch <- clk.Now():
	case <-time.After(2 * time.Second):
		t.Fatalf("tracker loop did not receive tick")
	}
	select {
	case u := <-gw.updates:
		return u
	case <-time.After(2 * time.Second):
		t.Fatalf("no progress update after tick")
	}
	return update{}
}

func TestStartOpensSessionOnce(t *testing.T) {
	t.Parallel()
	gw := newFakeGateway()
	tracker, clk := newTracker(gw, nil)
	defer tracker.Stop()

	tracker.Start(context.Background())
	tracker.Start(context.Background())

	if gw.starts != 1 {
		t.Fatalf("expected one start call, got %d", gw.starts)
	}
	metrics := tracker.Metrics()
	if metrics.State != domain.StateTracking || metrics.SessionID != "s1" {
		t.Fatalf("unexpected metrics after start: %+v", metrics)
	}
	if clk.interval != service.DefaultInterval {
		t.Fatalf("expected default interval, got %s", clk.interval)
	}
}

func TestTickPushesElapsedAndMaxDepth(t *testing.T) {
	t.Parallel()
	gw := newFakeGateway()
	tracker, clk := newTracker(gw, nil)
	defer tracker.Stop()
	tracker.Start(context.Background())

	tracker.ReportScroll(40)
	tracker.ReportScroll(20)
	clk.Advance(10 * time.Second)
	u := tick(t, clk, gw)
	if u.sessionID != "s1" || u.progress.TimeOnPage != 10 || u.progress.ScrollDepth != 40 {
		t.Fatalf("unexpected update: %+v", u)
	}
	if !u.progress.ScrollEvent.Equal(clk.Now()) {
		t.Fatalf("scroll event should be the tick time, got %s", u.progress.ScrollEvent)
	}

	tracker.ReportScroll(250)
	clk.Advance(10 * time.Second)
	u = tick(t, clk, gw)
	if u.progress.TimeOnPage != 20 || u.progress.ScrollDepth != 100 {
		t.Fatalf("expected clamped depth and 20s, got %+v", u.progress)
	}
}

func TestFailedUpdateKeepsTracking(t *testing.T) {
	t.Parallel()
	gw := newFakeGateway()
	gw.updateErr = errors.New("bad gateway")
	tracker, clk := newTracker(gw, nil)
	defer tracker.Stop()
	tracker.Start(context.Background())

	tick(t, clk, gw)
	tick(t, clk, gw)
	if !tracker.Metrics().Tracking() {
		t.Fatalf("tracker should keep tracking after a failed push")
	}
}

func TestFailedStartStaysIdle(t *testing.T) {
	t.Parallel()
	gw := newFakeGateway()
	gw.startErr = errors.New("connection refused")
	tracker, clk := newTracker(gw, nil)
	defer tracker.Stop()

	tracker.Start(context.Background())
	tracker.ReportScroll(50)

	metrics := tracker.Metrics()
	if metrics.State != domain.StateIdle || metrics.ScrollDepth != 0 {
		t.Fatalf("expected idle tracker, got %+v", metrics)
	}
	if len(clk.tickers) != 0 {
		t.Fatalf("no ticker should run after a failed start")
	}
	if _, err := tracker.Complete(context.Background()); !errors.Is(err, apperrors.ErrNotTracking) {
		t.Fatalf("expected ErrNotTracking, got %v", err)
	}
}

func TestCompleteStopsTickerAndRecordsHistory(t *testing.T) {
	t.Parallel()
	gw := newFakeGateway()
	history := &fakeHistory{}
	tracker, clk := newTracker(gw, history)
	tracker.Start(context.Background())
	tracker.ReportScroll(92)
	clk.Advance(95 * time.Second)

	unlocks, err := tracker.Complete(context.Background())
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !unlocks.CanComment || !unlocks.CanRate || unlocks.Message != "unlocked" {
		t.Fatalf("unexpected unlocks: %+v", unlocks)
	}
	if !clk.ticker(t).isStopped() {
		t.Fatalf("ticker must be stopped after completion")
	}
	metrics := tracker.Metrics()
	if metrics.State != domain.StateCompleted || metrics.TimeOnPage != 95 {
		t.Fatalf("unexpected metrics after completion: %+v", metrics)
	}

	entries, _ := history.List(context.Background(), 10)
	if len(entries) != 1 || entries[0].SessionID != "s1" || entries[0].ScrollDepth != 92 || entries[0].TimeOnPage != 95 {
		t.Fatalf("unexpected history: %+v", entries)
	}

	tracker.ReportScroll(99)
	if tracker.Metrics().ScrollDepth != 92 {
		t.Fatalf("scroll after completion must be ignored")
	}
	if _, err := tracker.Complete(context.Background()); !errors.Is(err, apperrors.ErrNotTracking) {
		t.Fatalf("second completion should fail with ErrNotTracking, got %v", err)
	}
	if gw.completes != 1 {
		t.Fatalf("expected one complete call, got %d", gw.completes)
	}
}

func TestStopIsIdempotentAndBlocksRestart(t *testing.T) {
	t.Parallel()
	gw := newFakeGateway()
	tracker, clk := newTracker(gw, nil)
	tracker.Start(context.Background())

	tracker.Stop()
	tracker.Stop()

	if !clk.ticker(t).isStopped() {
		t.Fatalf("ticker must be stopped")
	}
	if tracker.Metrics().Tracking() {
		t.Fatalf("tracker must not report tracking after stop")
	}
	tracker.Start(context.Background())
	if gw.starts != 1 {
		t.Fatalf("start after stop must not open a new session")
	}
}
