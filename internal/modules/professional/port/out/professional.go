package out

import (
	"context"

	"writerly/internal/modules/professional/domain"
)

type Gateway interface {
	Discover(ctx context.Context, filters domain.Filters) ([]domain.DiscoverWork, error)
	Inbox(ctx context.Context, status domain.Status) ([]domain.Submission, error)
	Respond(ctx context.Context, submissionID string, status domain.Status, response string) error
	MySubmissions(ctx context.Context) ([]domain.Submission, error)
}
