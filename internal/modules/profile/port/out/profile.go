package out

import (
	"context"

	"writerly/internal/modules/profile/domain"
)

type Gateway interface {
	Me(ctx context.Context) (domain.Profile, error)
	Get(ctx context.Context, username string) (domain.Profile, error)
	Works(ctx context.Context, username string) ([]domain.WorkSummary, error)
	Follow(ctx context.Context, username string) error
	Unfollow(ctx context.Context, username string) error
	UpdateMe(ctx context.Context, update domain.Update) (domain.Profile, error)
}
