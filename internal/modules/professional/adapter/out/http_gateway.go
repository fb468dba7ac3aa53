package out

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"writerly/internal/modules/professional/domain"
	professionalout "writerly/internal/modules/professional/port/out"
	"writerly/internal/platform/httpapi"
)

type HTTPGateway struct {
	client *httpapi.Client
}

func NewHTTPGateway(client *httpapi.Client) professionalout.Gateway {
	return &HTTPGateway{client: client}
}

// discoverQuery sends only the filters that were set.
func discoverQuery(f domain.Filters) url.Values {
	q := url.Values{}
	if len(f.Genres) > 0 {
		q.Set("genres", strings.Join(f.Genres, ","))
	}
	if f.MinWordCount > 0 {
		q.Set("min_word_count", strconv.Itoa(f.MinWordCount))
	}
	if f.MaxWordCount > 0 {
		q.Set("max_word_count", strconv.Itoa(f.MaxWordCount))
	}
	if f.MinRating > 0 {
		q.Set("min_rating", strconv.FormatFloat(f.MinRating, 'f', -1, 64))
	}
	if f.MinViews > 0 {
		q.Set("min_views", strconv.Itoa(f.MinViews))
	}
	return q
}

func (g *HTTPGateway) Discover(ctx context.Context, filters domain.Filters) ([]domain.DiscoverWork, error) {
	out := []domain.DiscoverWork{}
	err := g.client.Get(ctx, "/professional/discover", discoverQuery(filters), &out)
	return out, err
}

func (g *HTTPGateway) Inbox(ctx context.Context, status domain.Status) ([]domain.Submission, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": {string(status)}}
	}
	out := []domain.Submission{}
	err := g.client.Get(ctx, "/professional/inbox", query, &out)
	return out, err
}

func (g *HTTPGateway) Respond(ctx context.Context, submissionID string, status domain.Status, response string) error {
	body := map[string]string{"status": string(status), "response": response}
	return g.client.Put(ctx, httpapi.Path("professional", "submissions", submissionID, "respond"), body, nil)
}

func (g *HTTPGateway) MySubmissions(ctx context.Context) ([]domain.Submission, error) {
	out := []domain.Submission{}
	err := g.client.Get(ctx, "/professional/submissions", nil, &out)
	return out, err
}
