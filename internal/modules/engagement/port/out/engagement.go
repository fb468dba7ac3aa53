package out

import (
	"context"

	"writerly/internal/modules/engagement/domain"
)

type Gateway interface {
	Bookmarks(ctx context.Context) (domain.Bookmarks, error)
	IsBookmarked(ctx context.Context, workID string) (bool, error)
	AddBookmark(ctx context.Context, workID string) error
	RemoveBookmark(ctx context.Context, workID string) error
	Comments(ctx context.Context, workID string) ([]domain.Comment, error)
	AddComment(ctx context.Context, workID, content string) error
	Rate(ctx context.Context, workID string, rating domain.Rating) error
}

// UnlockChecker reports whether the current reader may comment on or rate
// a work.
type UnlockChecker interface {
	Unlocks(ctx context.Context, workID string) (domain.Unlocks, error)
}
