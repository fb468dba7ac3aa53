package out

import (
	"context"

	"writerly/internal/modules/dashboard/domain"
)

type Gateway interface {
	Stats(ctx context.Context) (domain.Stats, error)
	Activity(ctx context.Context, days int) ([]domain.Activity, error)
}
