package in

import (
	"context"

	"writerly/internal/modules/plugin/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	ListCommands(ctx context.Context, pluginName string) ([]dto.CommandInfo, error)
	Analyze(ctx context.Context, input dto.AnalyzeInput) (dto.AnalyzeOutput, error)
}
