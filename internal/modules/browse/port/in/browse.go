package in

import (
	"context"

	"writerly/internal/modules/browse/dto"
)

type Usecase interface {
	Works(ctx context.Context, input dto.QueryInput) (dto.PageOutput, error)
	// Search runs a text query over title and summary; an empty text
	// falls back to Works.
	Search(ctx context.Context, input dto.QueryInput) (dto.PageOutput, error)
	Genres(ctx context.Context) ([]dto.GenreOutput, error)
}
