package domain

import (
	"fmt"
	"net/url"
	"strings"

	"writerly/internal/platform/apitime"
)

// Me is the path alias for the signed-in user's own profile.
const Me = "me"

const (
	MaxBioLength      = 500
	MaxLocationLength = 100
)

type Profile struct {
	ID             string       `json:"id"`
	Username       string       `json:"username"`
	Bio            string       `json:"bio"`
	AvatarURL      string       `json:"avatar_url"`
	Location       string       `json:"location"`
	Website        string       `json:"website"`
	Role           string       `json:"role"`
	WorksCount     int          `json:"works_count"`
	FollowersCount int          `json:"followers_count"`
	FollowingCount int          `json:"following_count"`
	CreatedAt      apitime.Time `json:"created_at"`
	IsFollowing    *bool        `json:"is_following"`
}

type WorkSummary struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Genre         string       `json:"genre"`
	WordCount     int          `json:"word_count"`
	RatingAverage float64      `json:"rating_average"`
	RatingCount   int          `json:"rating_count"`
	ViewsCount    int          `json:"views_count"`
	CreatedAt     apitime.Time `json:"created_at"`
}

type Update struct {
	Bio      string `json:"bio"`
	Location string `json:"location"`
	Website  string `json:"website"`
}

func (u Update) Validate() error {
	if len([]rune(u.Bio)) > MaxBioLength {
		return fmt.Errorf("bio must be at most %d characters", MaxBioLength)
	}
	if len([]rune(u.Location)) > MaxLocationLength {
		return fmt.Errorf("location must be at most %d characters", MaxLocationLength)
	}
	if u.Website != "" {
		parsed, err := url.Parse(u.Website)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return fmt.Errorf("website must be an http(s) url")
		}
	}
	return nil
}

// IsSelf reports whether username refers to the signed-in user.
func IsSelf(username string) bool {
	trimmed := strings.TrimSpace(username)
	return trimmed == "" || trimmed == Me
}
