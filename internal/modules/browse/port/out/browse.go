package out

import (
	"context"

	"writerly/internal/modules/browse/domain"
)

type Gateway interface {
	Works(ctx context.Context, query domain.Query) (domain.Page, error)
	Search(ctx context.Context, query domain.Query) (domain.Page, error)
	Genres(ctx context.Context) ([]domain.Genre, error)
}
