package usecase

import (
	"context"
	"fmt"
	"strings"

	"writerly/internal/modules/engagement/domain"
	"writerly/internal/modules/engagement/dto"
	engagementin "writerly/internal/modules/engagement/port/in"
	engagementout "writerly/internal/modules/engagement/port/out"
	"writerly/internal/platform/apitime"
	apperrors "writerly/internal/platform/errors"
	"writerly/internal/platform/id"
)

type Interactor struct {
	gateway engagementout.Gateway
	unlocks engagementout.UnlockChecker
}

func NewInteractor(gateway engagementout.Gateway, unlocks engagementout.UnlockChecker) engagementin.Usecase {
	return &Interactor{gateway: gateway, unlocks: unlocks}
}

func (i *Interactor) Bookmarks(ctx context.Context) ([]dto.BookmarkOutput, error) {
	list, err := i.gateway.Bookmarks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return toBookmarkOutputs(list), nil
}

func (i *Interactor) IsBookmarked(ctx context.Context, workID string) (bool, error) {
	normalized, err := id.Parse("work", workID)
	if err != nil {
		return false, err
	}
	return i.gateway.IsBookmarked(ctx, normalized)
}

func (i *Interactor) AddBookmark(ctx context.Context, workID string) error {
	normalized, err := id.Parse("work", workID)
	if err != nil {
		return err
	}
	if err := i.gateway.AddBookmark(ctx, normalized); err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}
	return nil
}

func (i *Interactor) RemoveBookmark(ctx context.Context, input dto.RemoveBookmarkInput) ([]dto.BookmarkOutput, error) {
	normalized, err := id.Parse("work", input.WorkID)
	if err != nil {
		return nil, err
	}
	if err := i.gateway.RemoveBookmark(ctx, normalized); err != nil {
		return nil, fmt.Errorf("remove bookmark: %w", err)
	}
	current := make(domain.Bookmarks, 0, len(input.Current))
	for _, b := range input.Current {
		current = append(current, domain.Bookmark{
			ID:                 b.ID,
			WorkID:             b.WorkID,
			WorkTitle:          b.WorkTitle,
			WorkAuthorUsername: b.WorkAuthorUsername,
			WorkGenre:          b.WorkGenre,
			WorkSummary:        b.WorkSummary,
			WorkWordCount:      b.WorkWordCount,
			CreatedAt:          apitime.Time{Time: b.CreatedAt},
		})
	}
	return toBookmarkOutputs(current.Without(normalized)), nil
}

func (i *Interactor) Comments(ctx context.Context, workID string) ([]dto.CommentOutput, error) {
	normalized, err := id.Parse("work", workID)
	if err != nil {
		return nil, err
	}
	comments, err := i.gateway.Comments(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return toCommentOutputs(comments), nil
}

func (i *Interactor) AddComment(ctx context.Context, input dto.CommentInput) ([]dto.CommentOutput, error) {
	normalized, err := id.Parse("work", input.WorkID)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(input.Content)
	if err := domain.ValidateComment(content); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	unlocks, err := i.checkUnlocks(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if !unlocks.CanComment {
		return nil, lockedError("commenting", unlocks.Message)
	}
	if err := i.gateway.AddComment(ctx, normalized, content); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return i.Comments(ctx, normalized)
}

func (i *Interactor) Rate(ctx context.Context, input dto.RateInput) error {
	normalized, err := id.Parse("work", input.WorkID)
	if err != nil {
		return err
	}
	rating := domain.Rating{Score: input.Score, Review: strings.TrimSpace(input.Review)}
	if err := rating.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	unlocks, err := i.checkUnlocks(ctx, normalized)
	if err != nil {
		return err
	}
	if !unlocks.CanRate {
		return lockedError("rating", unlocks.Message)
	}
	if err := i.gateway.Rate(ctx, normalized, rating); err != nil {
		return fmt.Errorf("rate work: %w", err)
	}
	return nil
}

func (i *Interactor) checkUnlocks(ctx context.Context, workID string) (domain.Unlocks, error) {
	if i.unlocks == nil {
		return domain.Unlocks{CanComment: true, CanRate: true}, nil
	}
	unlocks, err := i.unlocks.Unlocks(ctx, workID)
	if err != nil {
		return domain.Unlocks{}, fmt.Errorf("check reading validation: %w", err)
	}
	return unlocks, nil
}

func lockedError(action, message string) error {
	if message == "" {
		return fmt.Errorf("%w (%s)", apperrors.ErrLocked, action)
	}
	return fmt.Errorf("%w (%s): %s", apperrors.ErrLocked, action, message)
}

func toBookmarkOutputs(list domain.Bookmarks) []dto.BookmarkOutput {
	out := make([]dto.BookmarkOutput, 0, len(list))
	for _, b := range list {
		out = append(out, dto.BookmarkOutput{
			ID:                 b.ID,
			WorkID:             b.WorkID,
			WorkTitle:          b.WorkTitle,
			WorkAuthorUsername: b.WorkAuthorUsername,
			WorkGenre:          b.WorkGenre,
			WorkSummary:        b.WorkSummary,
			WorkWordCount:      b.WorkWordCount,
			CreatedAt:          b.CreatedAt.Time,
		})
	}
	return out
}

func toCommentOutputs(list []domain.Comment) []dto.CommentOutput {
	out := make([]dto.CommentOutput, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CommentOutput{ID: c.ID, Username: c.Username, Content: c.Content, CreatedAt: c.CreatedAt.Time})
	}
	return out
}
