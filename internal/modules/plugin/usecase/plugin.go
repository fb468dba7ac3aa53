package usecase

import (
	"context"
	"strings"

	"writerly/internal/modules/plugin/dto"
	pluginin "writerly/internal/modules/plugin/port/in"
	"writerly/internal/modules/plugin/service"
	"writerly/internal/platform/id"
)

type Interactor struct {
	svc *service.PluginService
}

func NewInteractor(svc *service.PluginService) pluginin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) ListCommands(ctx context.Context, pluginName string) ([]dto.CommandInfo, error) {
	return i.svc.ListCommands(ctx, strings.TrimSpace(pluginName))
}

func (i *Interactor) Analyze(ctx context.Context, input dto.AnalyzeInput) (dto.AnalyzeOutput, error) {
	workID, err := id.Parse("work", input.WorkID)
	if err != nil {
		return dto.AnalyzeOutput{}, err
	}
	input.WorkID = workID
	input.PluginName = strings.TrimSpace(input.PluginName)
	input.CommandID = strings.TrimSpace(input.CommandID)
	return i.svc.Analyze(ctx, input)
}
