package dto

import "time"

type BookmarkOutput struct {
	ID                 string
	WorkID             string
	WorkTitle          string
	WorkAuthorUsername string
	WorkGenre          string
	WorkSummary        string
	WorkWordCount      int
	CreatedAt          time.Time
}

// RemoveBookmarkInput carries the list currently on screen so the result
// can be produced without another fetch.
type RemoveBookmarkInput struct {
	WorkID  string
	Current []BookmarkOutput
}

type CommentOutput struct {
	ID        string
	Username  string
	Content   string
	CreatedAt time.Time
}

type CommentInput struct {
	WorkID  string
	Content string
}

type RateInput struct {
	WorkID string
	Score  int
	Review string
}
