package in

import (
	"context"

	"writerly/internal/modules/browse/dto"
	browsein "writerly/internal/modules/browse/port/in"
)

type CLIHandler struct {
	usecase browsein.Usecase
}

func NewCLIHandler(usecase browsein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Works(ctx context.Context, input dto.QueryInput) (dto.PageOutput, error) {
	return h.usecase.Works(ctx, input)
}

func (h CLIHandler) Search(ctx context.Context, input dto.QueryInput) (dto.PageOutput, error) {
	return h.usecase.Search(ctx, input)
}

func (h CLIHandler) Genres(ctx context.Context) ([]dto.GenreOutput, error) {
	return h.usecase.Genres(ctx)
}
