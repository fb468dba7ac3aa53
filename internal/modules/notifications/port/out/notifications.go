package out

import (
	"context"

	"writerly/internal/modules/notifications/domain"
)

type Gateway interface {
	List(ctx context.Context, limit int) ([]domain.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}
