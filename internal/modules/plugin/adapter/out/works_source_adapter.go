package out

import (
	"context"

	"writerly/internal/modules/plugin/domain"
	pluginout "writerly/internal/modules/plugin/port/out"
	worksin "writerly/internal/modules/works/port/in"
)

type WorksSourceAdapter struct {
	works worksin.Usecase
}

func NewWorksSourceAdapter(works worksin.Usecase) pluginout.WorkSource {
	return &WorksSourceAdapter{works: works}
}

func (a *WorksSourceAdapter) Work(ctx context.Context, workID string) (domain.WorkInput, error) {
	work, err := a.works.Get(ctx, workID)
	if err != nil {
		return domain.WorkInput{}, err
	}
	return domain.WorkInput{WorkID: work.ID, Title: work.Title, Genre: work.Genre, Content: work.Content}, nil
}
