package in

import (
	"context"

	"writerly/internal/modules/works/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.CreateInput) (dto.WorkOutput, error)
	Get(ctx context.Context, id string) (dto.WorkOutput, error)
	List(ctx context.Context, input dto.ListInput) ([]dto.WorkOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.WorkOutput, error)
	Delete(ctx context.Context, id string) error
	Upload(ctx context.Context, input dto.UploadInput) (dto.WorkOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
