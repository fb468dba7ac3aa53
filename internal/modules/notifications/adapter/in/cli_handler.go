package in

import (
	"context"

	"writerly/internal/modules/notifications/dto"
	notificationsin "writerly/internal/modules/notifications/port/in"
)

type CLIHandler struct {
	usecase notificationsin.Usecase
}

func NewCLIHandler(usecase notificationsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, limit int) (dto.ListOutput, error) {
	return h.usecase.List(ctx, limit)
}

func (h CLIHandler) UnreadCount(ctx context.Context) (int, error) {
	return h.usecase.UnreadCount(ctx)
}

func (h CLIHandler) MarkRead(ctx context.Context, id string) error {
	return h.usecase.MarkRead(ctx, id)
}

func (h CLIHandler) MarkAllRead(ctx context.Context) error {
	return h.usecase.MarkAllRead(ctx)
}

func (h CLIHandler) Watch(ctx context.Context, fn func(count int)) error {
	return h.usecase.Watch(ctx, fn)
}
