package dto

import "time"

type DiscoverInput struct {
	Genres       []string
	MinWordCount int
	MaxWordCount int
	MinRating    float64
	MinViews     int
}

type DiscoverWorkOutput struct {
	ID             string
	Title          string
	Description    string
	Genre          string
	WordCount      int
	AuthorUsername string
	AverageRating  float64
	RatingCount    int
	ViewCount      int
	CreatedAt      time.Time
}

type RespondInput struct {
	SubmissionID string
	Status       string
	Response     string
}

type SubmissionOutput struct {
	ID             string
	WorkID         string
	WorkTitle      string
	AuthorUsername string
	Status         string
	Message        string
	Response       string
	SubmittedAt    time.Time
	ReviewedAt     time.Time
	RespondedAt    time.Time
}
