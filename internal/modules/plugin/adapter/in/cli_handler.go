package in

import (
	"context"

	"writerly/internal/modules/plugin/dto"
	pluginin "writerly/internal/modules/plugin/port/in"
)

type CLIHandler struct {
	usecase pluginin.Usecase
}

func NewCLIHandler(usecase pluginin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) ListCommands(ctx context.Context, pluginName string) ([]dto.CommandInfo, error) {
	return h.usecase.ListCommands(ctx, pluginName)
}

func (h CLIHandler) Analyze(ctx context.Context, pluginName, commandID, workID string) (dto.AnalyzeOutput, error) {
	return h.usecase.Analyze(ctx, dto.AnalyzeInput{PluginName: pluginName, CommandID: commandID, WorkID: workID})
}
