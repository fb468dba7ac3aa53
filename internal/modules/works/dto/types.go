package dto

import "time"

type CreateInput struct {
	Title         string
	Genre         string
	Summary       string
	Content       string
	ContentRating string
}

type UpdateInput struct {
	ID      string
	Title   *string
	Content *string
	Summary *string
	Status  *string
}

type ListInput struct {
	Skip  int
	Limit int
}

type UploadInput struct {
	Path          string
	Title         string
	Genre         string
	Summary       string
	ContentRating string
}

type ExportInput struct {
	ID  string
	Dir string
}

type ExportOutput struct {
	ID   string
	Path string
}

type WorkOutput struct {
	ID             string
	AuthorID       string
	AuthorUsername string
	Title          string
	Genre          string
	Summary        string
	Content        string
	ContentRating  string
	Status         string
	WordCount      int
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ViewsCount     int
	BookmarksCount int
	RatingAverage  float64
	RatingCount    int
	CommentCount   int
}
