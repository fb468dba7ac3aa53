package in

import (
	"context"

	"writerly/internal/modules/dashboard/dto"
)

type Usecase interface {
	Stats(ctx context.Context) (dto.StatsOutput, error)
	Activity(ctx context.Context, days int) ([]dto.ActivityOutput, error)
}
