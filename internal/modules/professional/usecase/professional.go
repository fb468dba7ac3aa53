package usecase

import (
	"context"
	"fmt"
	"strings"

	"writerly/internal/modules/professional/domain"
	"writerly/internal/modules/professional/dto"
	professionalin "writerly/internal/modules/professional/port/in"
	professionalout "writerly/internal/modules/professional/port/out"
	apperrors "writerly/internal/platform/errors"
	"writerly/internal/platform/id"
)

type Interactor struct {
	gateway professionalout.Gateway
}

func NewInteractor(gateway professionalout.Gateway) professionalin.Usecase {
	return &Interactor{gateway: gateway}
}

func (i *Interactor) Discover(ctx context.Context, input dto.DiscoverInput) ([]dto.DiscoverWorkOutput, error) {
	filters := domain.Filters{
		MinWordCount: input.MinWordCount,
		MaxWordCount: input.MaxWordCount,
		MinRating:    input.MinRating,
		MinViews:     input.MinViews,
	}
	for _, g := range input.Genres {
		if g = strings.TrimSpace(g); g != "" {
			filters.Genres = append(filters.Genres, g)
		}
	}
	if err := filters.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	works, err := i.gateway.Discover(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("discover works: %w", err)
	}
	out := make([]dto.DiscoverWorkOutput, 0, len(works))
	for _, w := range works {
		out = append(out, dto.DiscoverWorkOutput{
			ID:             w.ID,
			Title:          w.Title,
			Description:    w.Description,
			Genre:          w.Genre,
			WordCount:      w.WordCount,
			AuthorUsername: w.AuthorUsername,
			AverageRating:  w.AverageRating,
			RatingCount:    w.RatingCount,
			ViewCount:      w.ViewCount,
			CreatedAt:      w.CreatedAt.Time,
		})
	}
	return out, nil
}

func (i *Interactor) Inbox(ctx context.Context, status string) ([]dto.SubmissionOutput, error) {
	filter, err := domain.ParseInboxFilter(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	list, err := i.gateway.Inbox(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("load inbox: %w", err)
	}
	return toSubmissionOutputs(list), nil
}

func (i *Interactor) Respond(ctx context.Context, input dto.RespondInput) error {
	submissionID, err := id.Parse("submission", input.SubmissionID)
	if err != nil {
		return err
	}
	status, err := domain.ParseResponseStatus(input.Status)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := i.gateway.Respond(ctx, submissionID, status, strings.TrimSpace(input.Response)); err != nil {
		return fmt.Errorf("respond to submission: %w", err)
	}
	return nil
}

func (i *Interactor) MySubmissions(ctx context.Context) ([]dto.SubmissionOutput, error) {
	list, err := i.gateway.MySubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return toSubmissionOutputs(list), nil
}

func toSubmissionOutputs(list []domain.Submission) []dto.SubmissionOutput {
	out := make([]dto.SubmissionOutput, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SubmissionOutput{
			ID:             s.ID,
			WorkID:         s.WorkID,
			WorkTitle:      s.WorkTitle,
			AuthorUsername: s.AuthorUsername,
			Status:         string(s.Status),
			Message:        s.Message,
			Response:       s.Response,
			SubmittedAt:    s.SubmittedAt.Time,
			ReviewedAt:     s.ReviewedAt.Time,
			RespondedAt:    s.RespondedAt.Time,
		})
	}
	return out
}
