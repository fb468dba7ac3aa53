package domain

import "writerly/internal/platform/apitime"

const (
	DefaultListLimit = 50
	BellLimit        = 10
	MaxListLimit     = 100
)

type Notification struct {
	ID            string       `json:"id"`
	Type          string       `json:"type"`
	Title         string       `json:"title"`
	Message       string       `json:"message"`
	Link          string       `json:"link"`
	Read          bool         `json:"read"`
	CreatedAt     apitime.Time `json:"created_at"`
	ActorUsername string       `json:"actor_username"`
}

// Unread counts entries not yet marked as read.
func Unread(list []Notification) int {
	n := 0
	for _, item := range list {
		if !item.Read {
			n++
		}
	}
	return n
}

// NormalizeLimit maps a non-positive limit to the default and caps the rest.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
