package usecase_test

import (
	"context"
	"errors"
	"testing"

	"writerly/internal/modules/engagement/domain"
	"writerly/internal/modules/engagement/dto"
	"writerly/internal/modules/engagement/usecase"
	apperrors "writerly/internal/platform/errors"
)

const (
	workA = "11111111-1111-4111-8111-111111111111"
	workB = "22222222-2222-4222-8222-222222222222"
)

type fakeGateway struct {
	bookmarkLists int
	removed       []string
	comments      []domain.Comment
	commentLists  int
	posted        []string
	rated         []domain.Rating
}

func (f *fakeGateway) Bookmarks(context.Context) (domain.Bookmarks, error) {
	f.bookmarkLists++
	return domain.Bookmarks{{ID: "b1", WorkID: workA}, {ID: "b2", WorkID: workB}}, nil
}
func (f *fakeGateway) IsBookmarked(context.Context, string) (bool, error) { return true, nil }
func (f *fakeGateway) AddBookmark(context.Context, string) error          { return nil }
func (f *fakeGateway) RemoveBookmark(_ context.Context, workID string) error {
	f.removed = append(f.removed, workID)
	return nil
}
func (f *fakeGateway) Comments(context.Context, string) ([]domain.Comment, error) {
	f.commentLists++
	return f.comments, nil
}
func (f *fakeGateway) AddComment(_ context.Context, _ string, content string) error {
	f.posted = append(f.posted, content)
	f.comments = append(f.comments, domain.Comment{ID: "c", Username: "ana", Content: content})
	return nil
}
func (f *fakeGateway) Rate(_ context.Context, _ string, rating domain.Rating) error {
	f.rated = append(f.rated, rating)
	return nil
}

type fakeUnlocks struct {
	unlocks domain.Unlocks
	calls   int
}

func (f *fakeUnlocks) Unlocks(context.Context, string) (domain.Unlocks, error) {
	f.calls++
	return f.unlocks, nil
}

func TestRemoveBookmarkFiltersWithoutRefetch(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{}
	uc := usecase.NewInteractor(gw, nil)

	list, err := uc.Bookmarks(context.Background())
	if err != nil || len(list) != 2 {
		t.Fatalf("list bookmarks: %v (%d)", err, len(list))
	}
	remaining, err := uc.RemoveBookmark(context.Background(), dto.RemoveBookmarkInput{WorkID: workA, Current: list})
	if err != nil {
		t.Fatalf("remove bookmark: %v", err)
	}
	if len(remaining) != 1 || remaining[0].WorkID != workB {
		t.Fatalf("expected only second bookmark to remain, got %+v", remaining)
	}
	if gw.bookmarkLists != 1 {
		t.Fatalf("removal must not refetch the list, fetched %d times", gw.bookmarkLists)
	}
	if len(gw.removed) != 1 || gw.removed[0] != workA {
		t.Fatalf("expected delete for work A, got %v", gw.removed)
	}
}

func TestAddCommentRequiresUnlockAndRefetches(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{}
	unlocks := &fakeUnlocks{unlocks: domain.Unlocks{Message: "Read at least 80% to comment"}}
	uc := usecase.NewInteractor(gw, unlocks)

	_, err := uc.AddComment(context.Background(), dto.CommentInput{WorkID: workA, Content: "Great ending"})
	if !errors.Is(err, apperrors.ErrLocked) {
		t.Fatalf("expected locked error, got %v", err)
	}
	if len(gw.posted) != 0 {
		t.Fatalf("locked comment must not be sent")
	}

	unlocks.unlocks = domain.Unlocks{CanComment: true}
	comments, err := uc.AddComment(context.Background(), dto.CommentInput{WorkID: workA, Content: "  Great ending "})
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if len(gw.posted) != 1 || gw.posted[0] != "Great ending" {
		t.Fatalf("expected trimmed comment to be posted, got %v", gw.posted)
	}
	if gw.commentLists != 1 || len(comments) != 1 {
		t.Fatalf("expected comments to be refetched once, lists=%d comments=%d", gw.commentLists, len(comments))
	}
}

func TestAddCommentRejectsBlank(t *testing.T) {
	t.Parallel()
	unlocks := &fakeUnlocks{unlocks: domain.Unlocks{CanComment: true}}
	uc := usecase.NewInteractor(&fakeGateway{}, unlocks)
	if _, err := uc.AddComment(context.Background(), dto.CommentInput{WorkID: workA, Content: "   "}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if unlocks.calls != 0 {
		t.Fatalf("validation must happen before checking unlocks")
	}
}

func TestRateValidatesScoreAndUnlock(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{}
	unlocks := &fakeUnlocks{unlocks: domain.Unlocks{CanComment: true}}
	uc := usecase.NewInteractor(gw, unlocks)

	if err := uc.Rate(context.Background(), dto.RateInput{WorkID: workA, Score: 9}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid score, got %v", err)
	}
	if err := uc.Rate(context.Background(), dto.RateInput{WorkID: workA, Score: 4}); !errors.Is(err, apperrors.ErrLocked) {
		t.Fatalf("expected locked rating, got %v", err)
	}
	unlocks.unlocks.CanRate = true
	if err := uc.Rate(context.Background(), dto.RateInput{WorkID: workA, Score: 4, Review: " tight plot "}); err != nil {
		t.Fatalf("rate: %v", err)
	}
	if len(gw.rated) != 1 || gw.rated[0].Score != 4 || gw.rated[0].Review != "tight plot" {
		t.Fatalf("unexpected rating sent: %+v", gw.rated)
	}
}
