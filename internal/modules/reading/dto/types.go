package dto

import "time"

type UnlockOutput struct {
	CanComment bool
	CanRate    bool
	Message    string
}

type MetricsOutput struct {
	SessionID   string
	TimeOnPage  int
	ScrollDepth float64
	Tracking    bool
	State       string
}

type TrackInput struct {
	WorkID    string
	SectionID string
}

type HistoryOutput struct {
	SessionID   string
	WorkID      string
	SectionID   string
	StartedAt   time.Time
	CompletedAt time.Time
	TimeOnPage  int
	ScrollDepth float64
}
