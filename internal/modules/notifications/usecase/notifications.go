package usecase

import (
	"context"
	"fmt"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"writerly/internal/modules/notifications/domain"
	"writerly/internal/modules/notifications/dto"
	notificationsin "writerly/internal/modules/notifications/port/in"
	notificationsout "writerly/internal/modules/notifications/port/out"
	"writerly/internal/modules/notifications/service"
	"writerly/internal/platform/clock"
	"writerly/internal/platform/id"
)

type Interactor struct {
	gateway  notificationsout.Gateway
	clock    clock.Clock
	interval time.Duration
	logger   hclog.Logger
}

func NewInteractor(gateway notificationsout.Gateway, clk clock.Clock, interval time.Duration, logger hclog.Logger) notificationsin.Usecase {
	return &Interactor{gateway: gateway, clock: clk, interval: interval, logger: logger}
}

func (i *Interactor) List(ctx context.Context, limit int) (dto.ListOutput, error) {
	items, err := i.gateway.List(ctx, domain.NormalizeLimit(limit))
	if err != nil {
		return dto.ListOutput{}, fmt.Errorf("list notifications: %w", err)
	}
	out := dto.ListOutput{Items: make([]dto.NotificationOutput, 0, len(items)), Unread: domain.Unread(items)}
	for _, n := range items {
		out.Items = append(out.Items, dto.NotificationOutput{
			ID:            n.ID,
			Type:          n.Type,
			Title:         n.Title,
			Message:       n.Message,
			Link:          n.Link,
			Read:          n.Read,
			CreatedAt:     n.CreatedAt.Time,
			ActorUsername: n.ActorUsername,
		})
	}
	return out, nil
}

func (i *Interactor) UnreadCount(ctx context.Context) (int, error) {
	count, err := i.gateway.UnreadCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("unread count: %w", err)
	}
	return count, nil
}

func (i *Interactor) MarkRead(ctx context.Context, notificationID string) error {
	normalized, err := id.Parse("notification", notificationID)
	if err != nil {
		return err
	}
	if err := i.gateway.MarkRead(ctx, normalized); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (i *Interactor) MarkAllRead(ctx context.Context) error {
	if err := i.gateway.MarkAllRead(ctx); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

func (i *Interactor) Watch(ctx context.Context, fn func(count int)) error {
	return service.NewWatcher(i.clock, i.interval, i.UnreadCount, i.logger).Run(ctx, fn)
}
