package usecase

import (
	"context"
	"fmt"
	"strings"

	"writerly/internal/modules/works/domain"
	"writerly/internal/modules/works/dto"
	worksin "writerly/internal/modules/works/port/in"
	worksout "writerly/internal/modules/works/port/out"
	apperrors "writerly/internal/platform/errors"
	"writerly/internal/platform/id"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type Interactor struct {
	gateway  worksout.Gateway
	reader   worksout.DocumentReader
	exporter worksout.Exporter
}

func NewInteractor(gateway worksout.Gateway, reader worksout.DocumentReader, exporter worksout.Exporter) worksin.Usecase {
	return &Interactor{gateway: gateway, reader: reader, exporter: exporter}
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.WorkOutput, error) {
	draft := domain.Draft{
		Title:         strings.TrimSpace(input.Title),
		Genre:         strings.TrimSpace(input.Genre),
		Summary:       strings.TrimSpace(input.Summary),
		Content:       input.Content,
		ContentRating: strings.TrimSpace(input.ContentRating),
	}
	return i.create(ctx, draft)
}

func (i *Interactor) Get(ctx context.Context, workID string) (dto.WorkOutput, error) {
	normalized, err := id.Parse("work", workID)
	if err != nil {
		return dto.WorkOutput{}, err
	}
	work, err := i.gateway.Get(ctx, normalized)
	if err != nil {
		return dto.WorkOutput{}, fmt.Errorf("get work %s: %w", normalized, err)
	}
	return ToOutput(work), nil
}

func (i *Interactor) List(ctx context.Context, input dto.ListInput) ([]dto.WorkOutput, error) {
	if input.Skip < 0 {
		return nil, fmt.Errorf("%w: skip must be non-negative", apperrors.ErrInvalidInput)
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	works, err := i.gateway.List(ctx, input.Skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list works: %w", err)
	}
	out := make([]dto.WorkOutput, 0, len(works))
	for _, w := range works {
		out = append(out, ToOutput(w))
	}
	return out, nil
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.WorkOutput, error) {
	normalized, err := id.Parse("work", input.ID)
	if err != nil {
		return dto.WorkOutput{}, err
	}
	patch := domain.Patch{Title: input.Title, Content: input.Content, Summary: input.Summary, Status: input.Status}
	if err := patch.Validate(); err != nil {
		return dto.WorkOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	work, err := i.gateway.Update(ctx, normalized, patch)
	if err != nil {
		return dto.WorkOutput{}, fmt.Errorf("update work %s: %w", normalized, err)
	}
	return ToOutput(work), nil
}

func (i *Interactor) Delete(ctx context.Context, workID string) error {
	normalized, err := id.Parse("work", workID)
	if err != nil {
		return err
	}
	if err := i.gateway.Delete(ctx, normalized); err != nil {
		return fmt.Errorf("delete work %s: %w", normalized, err)
	}
	return nil
}

func (i *Interactor) Upload(ctx context.Context, input dto.UploadInput) (dto.WorkOutput, error) {
	if strings.TrimSpace(input.Path) == "" {
		return dto.WorkOutput{}, fmt.Errorf("%w: file path is required", apperrors.ErrInvalidInput)
	}
	doc, err := i.reader.Read(ctx, input.Path)
	if err != nil {
		return dto.WorkOutput{}, err
	}
	draft := domain.DraftFromDocument(doc, domain.Draft{
		Title:         input.Title,
		Genre:         input.Genre,
		Summary:       input.Summary,
		ContentRating: input.ContentRating,
	})
	return i.create(ctx, draft)
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	normalized, err := id.Parse("work", input.ID)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	dir := input.Dir
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	work, err := i.gateway.Get(ctx, normalized)
	if err != nil {
		return dto.ExportOutput{}, fmt.Errorf("get work %s: %w", normalized, err)
	}
	path, err := i.exporter.Export(ctx, dir, work)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{ID: work.ID, Path: path}, nil
}

func (i *Interactor) create(ctx context.Context, draft domain.Draft) (dto.WorkOutput, error) {
	if err := draft.Validate(); err != nil {
		return dto.WorkOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	work, err := i.gateway.Create(ctx, draft)
	if err != nil {
		return dto.WorkOutput{}, fmt.Errorf("create work: %w", err)
	}
	return ToOutput(work), nil
}

func ToOutput(w domain.Work) dto.WorkOutput {
	return dto.WorkOutput{
		ID:             w.ID,
		AuthorID:       w.AuthorID,
		AuthorUsername: w.AuthorUsername,
		Title:          w.Title,
		Genre:          w.Genre,
		Summary:        w.Summary,
		Content:        w.Content,
		ContentRating:  w.ContentRating,
		Status:         w.Status,
		WordCount:      w.WordCount,
		CreatedAt:      w.CreatedAt.Time,
		UpdatedAt:      w.UpdatedAt.Time,
		ViewsCount:     w.ViewsCount,
		BookmarksCount: w.BookmarksCount,
		RatingAverage:  w.RatingAverage,
		RatingCount:    w.RatingCount,
		CommentCount:   w.CommentCount,
	}
}
