package out

import (
	"context"

	"writerly/internal/modules/engagement/domain"
	engagementout "writerly/internal/modules/engagement/port/out"
	"writerly/internal/platform/httpapi"
)

type HTTPGateway struct {
	client *httpapi.Client
}

func NewHTTPGateway(client *httpapi.Client) engagementout.Gateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) Bookmarks(ctx context.Context) (domain.Bookmarks, error) {
	out := domain.Bookmarks{}
	err := g.client.Get(ctx, "/engagement/bookmarks", nil, &out)
	return out, err
}

func (g *HTTPGateway) IsBookmarked(ctx context.Context, workID string) (bool, error) {
	var out struct {
		IsBookmarked bool `json:"is_bookmarked"`
	}
	err := g.client.Get(ctx, httpapi.Path("engagement", "bookmarks", "check", workID), nil, &out)
	return out.IsBookmarked, err
}

func (g *HTTPGateway) AddBookmark(ctx context.Context, workID string) error {
	return g.client.Post(ctx, httpapi.Path("engagement", "bookmarks", workID), nil, nil)
}

func (g *HTTPGateway) RemoveBookmark(ctx context.Context, workID string) error {
	return g.client.Delete(ctx, httpapi.Path("engagement", "bookmarks", workID), nil)
}

func (g *HTTPGateway) Comments(ctx context.Context, workID string) ([]domain.Comment, error) {
	out := []domain.Comment{}
	err := g.client.Get(ctx, httpapi.Path("comments", "works", workID), nil, &out)
	return out, err
}

func (g *HTTPGateway) AddComment(ctx context.Context, workID, content string) error {
	return g.client.Post(ctx, httpapi.Path("comments", "works", workID), map[string]string{"content": content}, nil)
}

func (g *HTTPGateway) Rate(ctx context.Context, workID string, rating domain.Rating) error {
	return g.client.Post(ctx, httpapi.Path("ratings", "works", workID), rating, nil)
}
