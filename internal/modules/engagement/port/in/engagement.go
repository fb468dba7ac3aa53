package in

import (
	"context"

	"writerly/internal/modules/engagement/dto"
)

type Usecase interface {
	Bookmarks(ctx context.Context) ([]dto.BookmarkOutput, error)
	IsBookmarked(ctx context.Context, workID string) (bool, error)
	AddBookmark(ctx context.Context, workID string) error
	RemoveBookmark(ctx context.Context, input dto.RemoveBookmarkInput) ([]dto.BookmarkOutput, error)

	Comments(ctx context.Context, workID string) ([]dto.CommentOutput, error)
	// AddComment posts and returns the refreshed comment list.
	AddComment(ctx context.Context, input dto.CommentInput) ([]dto.CommentOutput, error)
	Rate(ctx context.Context, input dto.RateInput) error
}
