package out

import (
	"context"

	"writerly/internal/modules/profile/domain"
	profileout "writerly/internal/modules/profile/port/out"
	"writerly/internal/platform/httpapi"
)

type HTTPGateway struct {
	client *httpapi.Client
}

func NewHTTPGateway(client *httpapi.Client) profileout.Gateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) Me(ctx context.Context) (domain.Profile, error) {
	var out domain.Profile
	err := g.client.Get(ctx, "/profile/me", nil, &out)
	return out, err
}

func (g *HTTPGateway) Get(ctx context.Context, username string) (domain.Profile, error) {
	var out domain.Profile
	err := g.client.Get(ctx, httpapi.Path("profile", username), nil, &out)
	return out, err
}

func (g *HTTPGateway) Works(ctx context.Context, username string) ([]domain.WorkSummary, error) {
	out := []domain.WorkSummary{}
	err := g.client.Get(ctx, httpapi.Path("profile", username, "works"), nil, &out)
	return out, err
}

func (g *HTTPGateway) Follow(ctx context.Context, username string) error {
	return g.client.Post(ctx, httpapi.Path("profile", username, "follow"), nil, nil)
}

func (g *HTTPGateway) Unfollow(ctx context.Context, username string) error {
	return g.client.Delete(ctx, httpapi.Path("profile", username, "follow"), nil)
}

func (g *HTTPGateway) UpdateMe(ctx context.Context, update domain.Update) (domain.Profile, error) {
	var out domain.Profile
	err := g.client.Put(ctx, "/profile/me", update, &out)
	return out, err
}
