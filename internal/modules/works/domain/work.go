package domain

import (
	"fmt"
	"strings"
	"unicode"

	"writerly/internal/platform/apitime"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"

	DefaultContentRating = "PG"
)

var contentRatings = []string{"G", "PG", "PG-13", "R", "NC-17"}

type Work struct {
	ID             string       `json:"id"`
	AuthorID       string       `json:"author_id"`
	AuthorUsername string       `json:"author_username"`
	Title          string       `json:"title"`
	Genre          string       `json:"genre"`
	Summary        string       `json:"summary"`
	Content        string       `json:"content"`
	ContentRating  string       `json:"content_rating"`
	Status         string       `json:"status"`
	WordCount      int          `json:"word_count"`
	CreatedAt      apitime.Time `json:"created_at"`
	UpdatedAt      apitime.Time `json:"updated_at"`
	ViewsCount     int          `json:"views_count"`
	BookmarksCount int          `json:"bookmarks_count"`
	RatingAverage  float64      `json:"rating_average"`
	RatingCount    int          `json:"rating_count"`
	CommentCount   int          `json:"comment_count"`
}

// Draft is the payload for a new work.
type Draft struct {
	Title         string `json:"title"`
	Genre         string `json:"genre,omitempty"`
	ContentRating string `json:"content_rating,omitempty"`
	Content       string `json:"content"`
	Summary       string `json:"summary,omitempty"`
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(d.Content) == "" {
		return fmt.Errorf("content is required")
	}
	if d.ContentRating != "" && !validRating(d.ContentRating) {
		return fmt.Errorf("content rating must be one of %s", strings.Join(contentRatings, ", "))
	}
	return nil
}

// Patch carries only the fields being changed.
type Patch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Summary *string `json:"summary,omitempty"`
	Status  *string `json:"status,omitempty"`
}

func (p Patch) Validate() error {
	if p.Title == nil && p.Content == nil && p.Summary == nil && p.Status == nil {
		return fmt.Errorf("nothing to update")
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if p.Content != nil && strings.TrimSpace(*p.Content) == "" {
		return fmt.Errorf("content cannot be empty")
	}
	if p.Status != nil && *p.Status != StatusDraft && *p.Status != StatusPublished {
		return fmt.Errorf("status must be %s or %s", StatusDraft, StatusPublished)
	}
	return nil
}

// Document is a local file read for upload.
type Document struct {
	Path    string
	Title   string
	Genre   string
	Summary string
	Rating  string
	Body    string
}

// DraftFromDocument fills a draft from a document; non-empty overrides win.
func DraftFromDocument(doc Document, overrides Draft) Draft {
	pick := func(override, fallback string) string {
		if strings.TrimSpace(override) != "" {
			return strings.TrimSpace(override)
		}
		return strings.TrimSpace(fallback)
	}
	return Draft{
		Title:         pick(overrides.Title, doc.Title),
		Genre:         pick(overrides.Genre, doc.Genre),
		Summary:       pick(overrides.Summary, doc.Summary),
		ContentRating: pick(overrides.ContentRating, doc.Rating),
		Content:       strings.TrimSpace(doc.Body) + "\n",
	}
}

// CountWords approximates the server's word count for previews.
func CountWords(text string) int {
	return len(strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r)
	}))
}

func validRating(rating string) bool {
	for _, r := range contentRatings {
		if r == rating {
			return true
		}
	}
	return false
}
