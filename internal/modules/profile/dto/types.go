package dto

import "time"

type ProfileOutput struct {
	ID             string
	Username       string
	Bio            string
	AvatarURL      string
	Location       string
	Website        string
	Role           string
	WorksCount     int
	FollowersCount int
	FollowingCount int
	CreatedAt      time.Time
	// IsFollowing is nil on the viewer's own profile.
	IsFollowing *bool
	Own         bool
}

type WorkSummaryOutput struct {
	ID            string
	Title         string
	Genre         string
	WordCount     int
	RatingAverage float64
	RatingCount   int
	ViewsCount    int
	CreatedAt     time.Time
}

type UpdateInput struct {
	Bio      string
	Location string
	Website  string
}
