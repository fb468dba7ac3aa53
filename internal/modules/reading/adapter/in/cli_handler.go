package in

import (
	"context"

	"writerly/internal/modules/reading/dto"
	readingin "writerly/internal/modules/reading/port/in"
)

type CLIHandler struct {
	usecase readingin.Usecase
}

func NewCLIHandler(usecase readingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Validation(ctx context.Context, workID string) (dto.UnlockOutput, error) {
	return h.usecase.Validation(ctx, workID)
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]dto.HistoryOutput, error) {
	return h.usecase.History(ctx, limit)
}

// Track returns a tracker for one work view. The caller owns Start and Stop.
func (h CLIHandler) Track(workID, sectionID string) (readingin.Tracker, error) {
	return h.usecase.NewTracker(dto.TrackInput{WorkID: workID, SectionID: sectionID})
}
