package dto

import "time"

type QueryInput struct {
	Text      string
	Genre     string
	MinRating float64
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

type CardOutput struct {
	ID             string
	Title          string
	AuthorUsername string
	Genre          string
	Summary        string
	WordCount      int
	RatingAverage  float64
	RatingCount    int
	BookmarksCount int
	ViewsCount     int
	CreatedAt      time.Time
}

type PageOutput struct {
	Works      []CardOutput
	Total      int
	TotalPages int
	Page       int
	Window     []int
}

type GenreOutput struct {
	Genre     string
	Count     int
	AvgRating float64
}
