package domain

import (
	"sort"

	"writerly/internal/platform/apitime"
)

const (
	DefaultActivityDays = 7
	MaxActivityDays     = 90
)

type WorkStat struct {
	WorkID        string  `json:"work_id"`
	Title         string  `json:"title"`
	Views         int     `json:"views"`
	Reads         int     `json:"reads"`
	Comments      int     `json:"comments"`
	Ratings       int     `json:"ratings"`
	AverageRating float64 `json:"average_rating"`
	Bookmarks     int     `json:"bookmarks"`
}

// ReadRate is the share of views that turned into completed reads.
func (w WorkStat) ReadRate() float64 {
	if w.Views == 0 {
		return 0
	}
	return float64(w.Reads) / float64(w.Views) * 100
}

type Stats struct {
	TotalWorks     int        `json:"total_works"`
	TotalViews     int        `json:"total_views"`
	TotalReads     int        `json:"total_reads"`
	TotalRatings   int        `json:"total_ratings"`
	AverageRating  float64    `json:"average_rating"`
	TotalFollowers int        `json:"total_followers"`
	WorkStats      []WorkStat `json:"work_stats"`
}

// SortByViews orders per-work stats from most to least viewed.
func (s *Stats) SortByViews() {
	sort.SliceStable(s.WorkStats, func(i, j int) bool {
		return s.WorkStats[i].Views > s.WorkStats[j].Views
	})
}

type Activity struct {
	Type      string       `json:"type"`
	Message   string       `json:"message"`
	Timestamp apitime.Time `json:"timestamp"`
}

func NormalizeDays(days int) int {
	switch {
	case days <= 0:
		return DefaultActivityDays
	case days > MaxActivityDays:
		return MaxActivityDays
	default:
		return days
	}
}
