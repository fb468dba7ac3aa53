package out

import (
	"context"
	"net/url"
	"strconv"

	"writerly/internal/modules/browse/domain"
	browseout "writerly/internal/modules/browse/port/out"
	"writerly/internal/platform/httpapi"
)

const searchFields = "title,summary"

type HTTPGateway struct {
	client *httpapi.Client
}

func NewHTTPGateway(client *httpapi.Client) browseout.Gateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) Works(ctx context.Context, q domain.Query) (domain.Page, error) {
	out := domain.Page{}
	err := g.client.Get(ctx, "/browse/works", listParams(q), &out)
	return out, err
}

func (g *HTTPGateway) Search(ctx context.Context, q domain.Query) (domain.Page, error) {
	params := listParams(q)
	params.Set("q", q.Text)
	params.Set("search_in", searchFields)
	out := domain.Page{}
	err := g.client.Get(ctx, "/browse/search", params, &out)
	return out, err
}

func (g *HTTPGateway) Genres(ctx context.Context) ([]domain.Genre, error) {
	out := []domain.Genre{}
	err := g.client.Get(ctx, "/browse/genres", nil, &out)
	return out, err
}

func listParams(q domain.Query) url.Values {
	params := url.Values{
		"page":       {strconv.Itoa(q.Page)},
		"page_size":  {strconv.Itoa(q.PageSize)},
		"sort_by":    {q.SortBy},
		"sort_order": {q.SortOrder},
	}
	if q.Genre != "" {
		params.Set("genre", q.Genre)
	}
	if q.MinRating > 0 {
		params.Set("min_rating", strconv.FormatFloat(q.MinRating, 'f', -1, 64))
	}
	return params
}
