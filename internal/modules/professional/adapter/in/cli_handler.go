package in

import (
	"context"

	"writerly/internal/modules/professional/dto"
	professionalin "writerly/internal/modules/professional/port/in"
)

type CLIHandler struct {
	usecase professionalin.Usecase
}

func NewCLIHandler(usecase professionalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Discover(ctx context.Context, input dto.DiscoverInput) ([]dto.DiscoverWorkOutput, error) {
	return h.usecase.Discover(ctx, input)
}

func (h CLIHandler) Inbox(ctx context.Context, status string) ([]dto.SubmissionOutput, error) {
	return h.usecase.Inbox(ctx, status)
}

func (h CLIHandler) Respond(ctx context.Context, submissionID, status, response string) error {
	return h.usecase.Respond(ctx, dto.RespondInput{SubmissionID: submissionID, Status: status, Response: response})
}

func (h CLIHandler) MySubmissions(ctx context.Context) ([]dto.SubmissionOutput, error) {
	return h.usecase.MySubmissions(ctx)
}
