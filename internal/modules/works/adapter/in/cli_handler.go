package in

import (
	"context"

	"writerly/internal/modules/works/dto"
	worksin "writerly/internal/modules/works/port/in"
)

type CLIHandler struct {
	usecase worksin.Usecase
}

func NewCLIHandler(usecase worksin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, input dto.CreateInput) (dto.WorkOutput, error) {
	return h.usecase.Create(ctx, input)
}

func (h CLIHandler) Get(ctx context.Context, id string) (dto.WorkOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) List(ctx context.Context, skip, limit int) ([]dto.WorkOutput, error) {
	return h.usecase.List(ctx, dto.ListInput{Skip: skip, Limit: limit})
}

func (h CLIHandler) Update(ctx context.Context, input dto.UpdateInput) (dto.WorkOutput, error) {
	return h.usecase.Update(ctx, input)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Upload(ctx context.Context, input dto.UploadInput) (dto.WorkOutput, error) {
	return h.usecase.Upload(ctx, input)
}

func (h CLIHandler) Export(ctx context.Context, id, dir string) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, dto.ExportInput{ID: id, Dir: dir})
}
