package in

import (
	"context"

	"writerly/internal/modules/professional/dto"
)

type Usecase interface {
	Discover(ctx context.Context, input dto.DiscoverInput) ([]dto.DiscoverWorkOutput, error)
	Inbox(ctx context.Context, status string) ([]dto.SubmissionOutput, error)
	Respond(ctx context.Context, input dto.RespondInput) error
	MySubmissions(ctx context.Context) ([]dto.SubmissionOutput, error)
}
