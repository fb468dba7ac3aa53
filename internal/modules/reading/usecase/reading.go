package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"writerly/internal/modules/reading/domain"
	"writerly/internal/modules/reading/dto"
	readingin "writerly/internal/modules/reading/port/in"
	readingout "writerly/internal/modules/reading/port/out"
	"writerly/internal/modules/reading/service"
	"writerly/internal/platform/clock"
	"writerly/internal/platform/id"
)

const defaultHistoryLimit = 20

type Interactor struct {
	clock    clock.Clock
	gateway  readingout.Gateway
	history  readingout.HistoryStore
	logger   hclog.Logger
	interval time.Duration
}

func NewInteractor(clk clock.Clock, gateway readingout.Gateway, history readingout.HistoryStore, logger hclog.Logger, interval time.Duration) readingin.Usecase {
	return &Interactor{clock: clk, gateway: gateway, history: history, logger: logger, interval: interval}
}

func (i *Interactor) Validation(ctx context.Context, workID string) (dto.UnlockOutput, error) {
	normalized, err := id.Parse("work", workID)
	if err != nil {
		return dto.UnlockOutput{}, err
	}
	unlocks, err := i.gateway.Validation(ctx, normalized)
	if err != nil {
		return dto.UnlockOutput{}, fmt.Errorf("reading validation: %w", err)
	}
	return toUnlockOutput(unlocks), nil
}

func (i *Interactor) NewTracker(input dto.TrackInput) (readingin.Tracker, error) {
	workID, err := id.Parse("work", input.WorkID)
	if err != nil {
		return nil, err
	}
	sectionID := strings.TrimSpace(input.SectionID)
	if sectionID != "" {
		if sectionID, err = id.Parse("section", sectionID); err != nil {
			return nil, err
		}
	}
	return trackerHandle{tracker: service.NewTracker(i.clock, i.gateway, i.history, i.logger, i.interval, workID, sectionID)}, nil
}

func (i *Interactor) History(ctx context.Context, limit int) ([]dto.HistoryOutput, error) {
	if i.history == nil {
		return []dto.HistoryOutput{}, nil
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	entries, err := i.history.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list reading history: %w", err)
	}
	out := make([]dto.HistoryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.HistoryOutput{
			SessionID:   e.SessionID,
			WorkID:      e.WorkID,
			SectionID:   e.SectionID,
			StartedAt:   e.StartedAt,
			CompletedAt: e.CompletedAt,
			TimeOnPage:  e.TimeOnPage,
			ScrollDepth: e.ScrollDepth,
		})
	}
	return out, nil
}

type trackerHandle struct {
	tracker *service.Tracker
}

func (h trackerHandle) Start(ctx context.Context) { h.tracker.Start(ctx) }

func (h trackerHandle) ReportScroll(depth float64) { h.tracker.ReportScroll(depth) }

func (h trackerHandle) Complete(ctx context.Context) (dto.UnlockOutput, error) {
	unlocks, err := h.tracker.Complete(ctx)
	if err != nil {
		return dto.UnlockOutput{}, err
	}
	return toUnlockOutput(unlocks), nil
}

func (h trackerHandle) Stop() { h.tracker.Stop() }

func (h trackerHandle) Metrics() dto.MetricsOutput {
	m := h.tracker.Metrics()
	return dto.MetricsOutput{
		SessionID:   m.SessionID,
		TimeOnPage:  m.TimeOnPage,
		ScrollDepth: m.ScrollDepth,
		Tracking:    m.Tracking(),
		State:       string(m.State),
	}
}

func toUnlockOutput(u domain.Unlocks) dto.UnlockOutput {
	return dto.UnlockOutput{CanComment: u.CanComment, CanRate: u.CanRate, Message: u.Message}
}
