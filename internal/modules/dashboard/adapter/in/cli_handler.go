package in

import (
	"context"

	"writerly/internal/modules/dashboard/dto"
	dashboardin "writerly/internal/modules/dashboard/port/in"
)

type CLIHandler struct {
	usecase dashboardin.Usecase
}

func NewCLIHandler(usecase dashboardin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Stats(ctx context.Context) (dto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}

func (h CLIHandler) Activity(ctx context.Context, days int) ([]dto.ActivityOutput, error) {
	return h.usecase.Activity(ctx, days)
}
