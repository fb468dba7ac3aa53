package in

import (
	"context"

	"writerly/internal/modules/reading/dto"
)

type Usecase interface {
	Validation(ctx context.Context, workID string) (dto.UnlockOutput, error)
	NewTracker(input dto.TrackInput) (Tracker, error)
	History(ctx context.Context, limit int) ([]dto.HistoryOutput, error)
}

// Tracker follows one mounted work view. Start opens the server session,
// Stop releases the ticker when the view goes away.
type Tracker interface {
	Start(ctx context.Context)
	ReportScroll(depth float64)
	Complete(ctx context.Context) (dto.UnlockOutput, error)
	Stop()
	Metrics() dto.MetricsOutput
}
