package out

import (
	"context"
	"net/url"
	"strconv"

	"writerly/internal/modules/notifications/domain"
	notificationsout "writerly/internal/modules/notifications/port/out"
	"writerly/internal/platform/httpapi"
)

type HTTPGateway struct {
	client *httpapi.Client
}

func NewHTTPGateway(client *httpapi.Client) notificationsout.Gateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) List(ctx context.Context, limit int) ([]domain.Notification, error) {
	out := []domain.Notification{}
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	err := g.client.Get(ctx, "/notifications", query, &out)
	return out, err
}

func (g *HTTPGateway) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	err := g.client.Get(ctx, "/notifications/unread-count", nil, &out)
	return out.Count, err
}

func (g *HTTPGateway) MarkRead(ctx context.Context, id string) error {
	return g.client.Put(ctx, httpapi.Path("notifications", id, "read"), nil, nil)
}

func (g *HTTPGateway) MarkAllRead(ctx context.Context) error {
	return g.client.Put(ctx, "/notifications/read-all", nil, nil)
}
