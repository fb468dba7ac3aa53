package out

import (
	"context"
	"net/url"
	"strconv"

	"writerly/internal/modules/works/domain"
	worksout "writerly/internal/modules/works/port/out"
	"writerly/internal/platform/httpapi"
)

type HTTPGateway struct {
	client *httpapi.Client
}

func NewHTTPGateway(client *httpapi.Client) worksout.Gateway {
	return &HTTPGateway{client: client}
}

// The collection endpoint is mounted with a trailing slash.
const collection = "/works/"

func (g *HTTPGateway) Create(ctx context.Context, draft domain.Draft) (domain.Work, error) {
	out := domain.Work{}
	err := g.client.Post(ctx, collection, draft, &out)
	return out, err
}

func (g *HTTPGateway) Get(ctx context.Context, id string) (domain.Work, error) {
	out := domain.Work{}
	err := g.client.Get(ctx, httpapi.Path("works", id), nil, &out)
	return out, err
}

func (g *HTTPGateway) List(ctx context.Context, skip, limit int) ([]domain.Work, error) {
	out := []domain.Work{}
	query := url.Values{"skip": {strconv.Itoa(skip)}, "limit": {strconv.Itoa(limit)}}
	err := g.client.Get(ctx, collection, query, &out)
	return out, err
}

func (g *HTTPGateway) Update(ctx context.Context, id string, patch domain.Patch) (domain.Work, error) {
	out := domain.Work{}
	err := g.client.Patch(ctx, httpapi.Path("works", id), patch, &out)
	return out, err
}

func (g *HTTPGateway) Delete(ctx context.Context, id string) error {
	return g.client.Delete(ctx, httpapi.Path("works", id), nil)
}
