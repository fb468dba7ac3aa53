package in

import (
	"context"

	"writerly/internal/modules/profile/dto"
	profilein "writerly/internal/modules/profile/port/in"
)

type CLIHandler struct {
	usecase profilein.Usecase
}

func NewCLIHandler(usecase profilein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Get(ctx context.Context, username string) (dto.ProfileOutput, error) {
	return h.usecase.Get(ctx, username)
}

func (h CLIHandler) Works(ctx context.Context, username string) ([]dto.WorkSummaryOutput, error) {
	return h.usecase.Works(ctx, username)
}

func (h CLIHandler) Follow(ctx context.Context, username string) error {
	return h.usecase.Follow(ctx, username)
}

func (h CLIHandler) Unfollow(ctx context.Context, username string) error {
	return h.usecase.Unfollow(ctx, username)
}

func (h CLIHandler) UpdateMe(ctx context.Context, bio, location, website string) (dto.ProfileOutput, error) {
	return h.usecase.UpdateMe(ctx, dto.UpdateInput{Bio: bio, Location: location, Website: website})
}
