package domain

import (
	"fmt"
	"strings"

	"writerly/internal/platform/apitime"
)

const (
	MinScore = 1
	MaxScore = 5
)

type Bookmark struct {
	ID                 string       `json:"id"`
	WorkID             string       `json:"work_id"`
	WorkTitle          string       `json:"work_title"`
	WorkAuthorUsername string       `json:"work_author_username"`
	WorkGenre          string       `json:"work_genre"`
	WorkSummary        string       `json:"work_summary"`
	WorkWordCount      int          `json:"work_word_count"`
	CreatedAt          apitime.Time `json:"created_at"`
}

type Bookmarks []Bookmark

// Without drops the entry for workID, keeping the order of the rest.
func (b Bookmarks) Without(workID string) Bookmarks {
	out := make(Bookmarks, 0, len(b))
	for _, item := range b {
		if item.WorkID == workID {
			continue
		}
		out = append(out, item)
	}
	return out
}

type Comment struct {
	ID        string       `json:"id"`
	Username  string       `json:"username"`
	Content   string       `json:"content"`
	CreatedAt apitime.Time `json:"created_at"`
}

type Rating struct {
	Score  int    `json:"score"`
	Review string `json:"review,omitempty"`
}

func (r Rating) Validate() error {
	if r.Score < MinScore || r.Score > MaxScore {
		return fmt.Errorf("score must be between %d and %d", MinScore, MaxScore)
	}
	return nil
}

func ValidateComment(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("comment cannot be empty")
	}
	return nil
}

// Unlocks are granted by the server once the reader has finished a work.
type Unlocks struct {
	CanComment bool
	CanRate    bool
	Message    string
}
