package out

import (
	"context"
	"net/url"
	"strconv"

	"writerly/internal/modules/dashboard/domain"
	dashboardout "writerly/internal/modules/dashboard/port/out"
	"writerly/internal/platform/httpapi"
)

type HTTPGateway struct {
	client *httpapi.Client
}

func NewHTTPGateway(client *httpapi.Client) dashboardout.Gateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) Stats(ctx context.Context) (domain.Stats, error) {
	var out domain.Stats
	err := g.client.Get(ctx, "/dashboard/stats", nil, &out)
	return out, err
}

func (g *HTTPGateway) Activity(ctx context.Context, days int) ([]domain.Activity, error) {
	out := []domain.Activity{}
	err := g.client.Get(ctx, "/dashboard/activity", url.Values{"days": {strconv.Itoa(days)}}, &out)
	return out, err
}
