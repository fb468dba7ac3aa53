package in

import (
	"context"

	"writerly/internal/modules/profile/dto"
)

type Usecase interface {
	Get(ctx context.Context, username string) (dto.ProfileOutput, error)
	Works(ctx context.Context, username string) ([]dto.WorkSummaryOutput, error)
	Follow(ctx context.Context, username string) error
	Unfollow(ctx context.Context, username string) error
	UpdateMe(ctx context.Context, input dto.UpdateInput) (dto.ProfileOutput, error)
}
