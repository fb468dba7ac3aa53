package out

import (
	"context"

	"writerly/internal/modules/engagement/domain"
	engagementout "writerly/internal/modules/engagement/port/out"
	readingin "writerly/internal/modules/reading/port/in"
)

type ReadingUnlockAdapter struct {
	reading readingin.Usecase
}

func NewReadingUnlockAdapter(reading readingin.Usecase) engagementout.UnlockChecker {
	return &ReadingUnlockAdapter{reading: reading}
}

func (a *ReadingUnlockAdapter) Unlocks(ctx context.Context, workID string) (domain.Unlocks, error) {
	v, err := a.reading.Validation(ctx, workID)
	if err != nil {
		return domain.Unlocks{}, err
	}
	return domain.Unlocks{CanComment: v.CanComment, CanRate: v.CanRate, Message: v.Message}, nil
}
