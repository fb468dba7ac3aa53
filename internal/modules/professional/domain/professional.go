package domain

import (
	"fmt"
	"strings"

	"writerly/internal/platform/apitime"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewing Status = "reviewing"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
)

// ParseInboxFilter accepts an empty filter or any submission status.
func ParseInboxFilter(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case "", StatusPending, StatusReviewing, StatusAccepted, StatusDeclined:
		return s, nil
	}
	return "", fmt.Errorf("unknown status %q", raw)
}

// ParseResponseStatus accepts only the statuses a reviewer can set.
func ParseResponseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusReviewing, StatusAccepted, StatusDeclined:
		return s, nil
	}
	return "", fmt.Errorf("status must be reviewing, accepted or declined, got %q", raw)
}

type DiscoverWork struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Genre          string       `json:"genre"`
	WordCount      int          `json:"word_count"`
	AuthorUsername string       `json:"author_username"`
	AverageRating  float64      `json:"average_rating"`
	RatingCount    int          `json:"rating_count"`
	ViewCount      int          `json:"view_count"`
	CreatedAt      apitime.Time `json:"created_at"`
}

type Filters struct {
	Genres       []string
	MinWordCount int
	MaxWordCount int
	MinRating    float64
	MinViews     int
}

func (f Filters) Validate() error {
	if f.MinWordCount < 0 || f.MaxWordCount < 0 || f.MinViews < 0 {
		return fmt.Errorf("counts must not be negative")
	}
	if f.MaxWordCount > 0 && f.MinWordCount > f.MaxWordCount {
		return fmt.Errorf("min word count %d exceeds max %d", f.MinWordCount, f.MaxWordCount)
	}
	if f.MinRating < 0 || f.MinRating > 5 {
		return fmt.Errorf("min rating must be between 0 and 5")
	}
	return nil
}

type Submission struct {
	ID             string       `json:"id"`
	WorkID         string       `json:"work_id"`
	AuthorID       string       `json:"author_id"`
	ProfessionalID string       `json:"professional_id"`
	Status         Status       `json:"status"`
	Message        string       `json:"message"`
	Response       string       `json:"response"`
	SubmittedAt    apitime.Time `json:"submitted_at"`
	ReviewedAt     apitime.Time `json:"reviewed_at"`
	RespondedAt    apitime.Time `json:"responded_at"`
	WorkTitle      string       `json:"work_title"`
	AuthorUsername string       `json:"author_username"`
}
