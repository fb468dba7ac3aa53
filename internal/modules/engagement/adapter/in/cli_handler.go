package in

import (
	"context"

	"writerly/internal/modules/engagement/dto"
	engagementin "writerly/internal/modules/engagement/port/in"
)

type CLIHandler struct {
	usecase engagementin.Usecase
}

func NewCLIHandler(usecase engagementin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Bookmarks(ctx context.Context) ([]dto.BookmarkOutput, error) {
	return h.usecase.Bookmarks(ctx)
}

func (h CLIHandler) IsBookmarked(ctx context.Context, workID string) (bool, error) {
	return h.usecase.IsBookmarked(ctx, workID)
}

func (h CLIHandler) AddBookmark(ctx context.Context, workID string) error {
	return h.usecase.AddBookmark(ctx, workID)
}

func (h CLIHandler) RemoveBookmark(ctx context.Context, workID string, current []dto.BookmarkOutput) ([]dto.BookmarkOutput, error) {
	return h.usecase.RemoveBookmark(ctx, dto.RemoveBookmarkInput{WorkID: workID, Current: current})
}

func (h CLIHandler) Comments(ctx context.Context, workID string) ([]dto.CommentOutput, error) {
	return h.usecase.Comments(ctx, workID)
}

func (h CLIHandler) AddComment(ctx context.Context, workID, content string) ([]dto.CommentOutput, error) {
	return h.usecase.AddComment(ctx, dto.CommentInput{WorkID: workID, Content: content})
}

func (h CLIHandler) Rate(ctx context.Context, workID string, score int, review string) error {
	return h.usecase.Rate(ctx, dto.RateInput{WorkID: workID, Score: score, Review: review})
}
