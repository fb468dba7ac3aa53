package usecase

import (
	"context"
	"fmt"

	"writerly/internal/modules/browse/domain"
	"writerly/internal/modules/browse/dto"
	browsein "writerly/internal/modules/browse/port/in"
	browseout "writerly/internal/modules/browse/port/out"
	apperrors "writerly/internal/platform/errors"
)

type Interactor struct {
	gateway browseout.Gateway
}

func NewInteractor(gateway browseout.Gateway) browsein.Usecase {
	return &Interactor{gateway: gateway}
}

func (i *Interactor) Works(ctx context.Context, input dto.QueryInput) (dto.PageOutput, error) {
	q, err := normalize(input)
	if err != nil {
		return dto.PageOutput{}, err
	}
	q.Text = ""
	page, err := i.gateway.Works(ctx, q)
	if err != nil {
		return dto.PageOutput{}, fmt.Errorf("browse works: %w", err)
	}
	return toPageOutput(page, q.Page), nil
}

func (i *Interactor) Search(ctx context.Context, input dto.QueryInput) (dto.PageOutput, error) {
	q, err := normalize(input)
	if err != nil {
		return dto.PageOutput{}, err
	}
	if q.Text == "" {
		return i.Works(ctx, input)
	}
	page, err := i.gateway.Search(ctx, q)
	if err != nil {
		return dto.PageOutput{}, fmt.Errorf("search works: %w", err)
	}
	return toPageOutput(page, q.Page), nil
}

func (i *Interactor) Genres(ctx context.Context) ([]dto.GenreOutput, error) {
	genres, err := i.gateway.Genres(ctx)
	if err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}
	out := make([]dto.GenreOutput, 0, len(genres))
	for _, g := range genres {
		out = append(out, dto.GenreOutput{Genre: g.Genre, Count: g.Count, AvgRating: g.AvgRating})
	}
	return out, nil
}

func normalize(input dto.QueryInput) (domain.Query, error) {
	q, err := domain.Query{
		Text:      input.Text,
		Genre:     input.Genre,
		MinRating: input.MinRating,
		SortBy:    input.SortBy,
		SortOrder: input.SortOrder,
		Page:      input.Page,
		PageSize:  input.PageSize,
	}.Normalize()
	if err != nil {
		return domain.Query{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return q, nil
}

func toPageOutput(page domain.Page, current int) dto.PageOutput {
	cards := make([]dto.CardOutput, 0, len(page.Works))
	for _, c := range page.Works {
		cards = append(cards, dto.CardOutput{
			ID:             c.ID,
			Title:          c.Title,
			AuthorUsername: c.AuthorUsername,
			Genre:          c.Genre,
			Summary:        c.Summary,
			WordCount:      c.WordCount,
			RatingAverage:  c.RatingAverage,
			RatingCount:    c.RatingCount,
			BookmarksCount: c.BookmarksCount,
			ViewsCount:     c.ViewsCount,
			CreatedAt:      c.CreatedAt.Time,
		})
	}
	return dto.PageOutput{
		Works:      cards,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Page:       current,
		Window:     domain.PageWindow(current, page.TotalPages),
	}
}
