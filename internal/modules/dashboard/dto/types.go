package dto

import "time"

type WorkStatOutput struct {
	WorkID        string
	Title         string
	Views         int
	Reads         int
	Comments      int
	Ratings       int
	AverageRating float64
	Bookmarks     int
	ReadRate      float64
}

type StatsOutput struct {
	TotalWorks     int
	TotalViews     int
	TotalReads     int
	TotalRatings   int
	AverageRating  float64
	TotalFollowers int
	Works          []WorkStatOutput
}

type ActivityOutput struct {
	Type      string
	Message   string
	Timestamp time.Time
}
