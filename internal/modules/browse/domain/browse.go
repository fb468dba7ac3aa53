package domain

import (
	"fmt"
	"strings"

	"writerly/internal/platform/apitime"
)

const (
	DefaultPageSize = 12
	windowSize      = 5

	SortCreatedAt     = "created_at"
	SortRatingAverage = "rating_average"
	SortViewsCount    = "views_count"
	SortWordCount     = "word_count"
)

var SortFields = []string{SortCreatedAt, SortRatingAverage, SortViewsCount, SortWordCount}

type Card struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	AuthorUsername string       `json:"author_username"`
	Genre          string       `json:"genre"`
	Summary        string       `json:"summary"`
	WordCount      int          `json:"word_count"`
	RatingAverage  float64      `json:"rating_average"`
	RatingCount    int          `json:"rating_count"`
	BookmarksCount int          `json:"bookmarks_count"`
	ViewsCount     int          `json:"views_count"`
	CreatedAt      apitime.Time `json:"created_at"`
}

type Genre struct {
	Genre     string  `json:"genre"`
	Count     int     `json:"count"`
	AvgRating float64 `json:"avg_rating"`
}

type Page struct {
	Works      []Card `json:"works"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
}

type Query struct {
	Text      string
	Genre     string
	MinRating float64
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// Normalize fills defaults and rejects values the API would refuse.
func (q Query) Normalize() (Query, error) {
	q.Text = strings.TrimSpace(q.Text)
	q.Genre = strings.TrimSpace(q.Genre)
	if q.SortBy == "" {
		q.SortBy = SortCreatedAt
	}
	if q.SortOrder == "" {
		q.SortOrder = "desc"
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	valid := false
	for _, f := range SortFields {
		if f == q.SortBy {
			valid = true
			break
		}
	}
	if !valid {
		return Query{}, fmt.Errorf("sort must be one of %s", strings.Join(SortFields, ", "))
	}
	if q.SortOrder != "asc" && q.SortOrder != "desc" {
		return Query{}, fmt.Errorf("order must be asc or desc")
	}
	if q.MinRating < 0 || q.MinRating > 5 {
		return Query{}, fmt.Errorf("min rating must be between 0 and 5")
	}
	return q, nil
}

// PageWindow returns up to five page numbers centred on page where the
// total allows, pinned to the first or last five near either end.
func PageWindow(page, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}
	page = Clamp(page, totalPages)
	n := windowSize
	if totalPages < n {
		n = totalPages
	}
	start := 1
	switch {
	case totalPages <= windowSize:
		start = 1
	case page <= 3:
		start = 1
	case page >= totalPages-2:
		start = totalPages - windowSize + 1
	default:
		start = page - 2
	}
	out := make([]int, n)
	for i := range out {
		out[i] = start + i
	}
	return out
}

func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		return 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

func Prev(page, totalPages int) int { return Clamp(page-1, totalPages) }

func Next(page, totalPages int) int { return Clamp(page+1, totalPages) }
