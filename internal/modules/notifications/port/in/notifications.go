package in

import (
	"context"

	"writerly/internal/modules/notifications/dto"
)

type Usecase interface {
	List(ctx context.Context, limit int) (dto.ListOutput, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	// Watch polls the unread count until ctx is done, calling fn with every
	// successful result.
	Watch(ctx context.Context, fn func(count int)) error
}
