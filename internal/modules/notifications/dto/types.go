package dto

import "time"

type NotificationOutput struct {
	ID            string
	Type          string
	Title         string
	Message       string
	Link          string
	Read          bool
	CreatedAt     time.Time
	ActorUsername string
}

type ListOutput struct {
	Items  []NotificationOutput
	Unread int
}
