package out

import (
	"context"
	"time"

	"writerly/internal/modules/reading/domain"
	readingout "writerly/internal/modules/reading/port/out"
	"writerly/internal/platform/httpapi"
)

type HTTPGateway struct {
	client *httpapi.Client
}

func NewHTTPGateway(client *httpapi.Client) readingout.Gateway {
	return &HTTPGateway{client: client}
}

type startRequest struct {
	WorkID    string  `json:"work_id"`
	SectionID *string `json:"section_id"`
}

type updateRequest struct {
	TimeOnPage  int     `json:"time_on_page"`
	ScrollDepth float64 `json:"scroll_depth"`
	ScrollEvent string  `json:"scroll_event"`
}

type unlockResponse struct {
	CanComment bool   `json:"can_comment"`
	CanRate    bool   `json:"can_rate"`
	Message    string `json:"message"`
}

func (r unlockResponse) domain() domain.Unlocks {
	return domain.Unlocks{CanComment: r.CanComment, CanRate: r.CanRate, Message: r.Message}
}

func (g *HTTPGateway) Start(ctx context.Context, workID, sectionID string) (string, error) {
	body := startRequest{WorkID: workID}
	if sectionID != "" {
		body.SectionID = &sectionID
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := g.client.Post(ctx, "/reading/start", body, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (g *HTTPGateway) Update(ctx context.Context, sessionID string, progress domain.Progress) error {
	body := updateRequest{
		TimeOnPage:  progress.TimeOnPage,
		ScrollDepth: progress.ScrollDepth,
		ScrollEvent: progress.ScrollEvent.UTC().Format(time.RFC3339),
	}
	return g.client.Put(ctx, httpapi.Path("reading", sessionID, "update"), body, nil)
}

func (g *HTTPGateway) Complete(ctx context.Context, sessionID string) (domain.Unlocks, error) {
	var out unlockResponse
	if err := g.client.Post(ctx, httpapi.Path("reading", sessionID, "complete"), nil, &out); err != nil {
		return domain.Unlocks{}, err
	}
	return out.domain(), nil
}

func (g *HTTPGateway) Validation(ctx context.Context, workID string) (domain.Unlocks, error) {
	var out unlockResponse
	if err := g.client.Get(ctx, httpapi.Path("reading", "validation", workID), nil, &out); err != nil {
		return domain.Unlocks{}, err
	}
	return out.domain(), nil
}
