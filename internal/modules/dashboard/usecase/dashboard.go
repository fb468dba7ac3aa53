package usecase

import (
	"context"
	"fmt"

	"writerly/internal/modules/dashboard/domain"
	"writerly/internal/modules/dashboard/dto"
	dashboardin "writerly/internal/modules/dashboard/port/in"
	dashboardout "writerly/internal/modules/dashboard/port/out"
)

type Interactor struct {
	gateway dashboardout.Gateway
}

func NewInteractor(gateway dashboardout.Gateway) dashboardin.Usecase {
	return &Interactor{gateway: gateway}
}

func (i *Interactor) Stats(ctx context.Context) (dto.StatsOutput, error) {
	stats, err := i.gateway.Stats(ctx)
	if err != nil {
		return dto.StatsOutput{}, fmt.Errorf("dashboard stats: %w", err)
	}
	stats.SortByViews()
	out := dto.StatsOutput{
		TotalWorks:     stats.TotalWorks,
		TotalViews:     stats.TotalViews,
		TotalReads:     stats.TotalReads,
		TotalRatings:   stats.TotalRatings,
		AverageRating:  stats.AverageRating,
		TotalFollowers: stats.TotalFollowers,
		Works:          make([]dto.WorkStatOutput, 0, len(stats.WorkStats)),
	}
	for _, w := range stats.WorkStats {
		out.Works = append(out.Works, dto.WorkStatOutput{
			WorkID:        w.WorkID,
			Title:         w.Title,
			Views:         w.Views,
			Reads:         w.Reads,
			Comments:      w.Comments,
			Ratings:       w.Ratings,
			AverageRating: w.AverageRating,
			Bookmarks:     w.Bookmarks,
			ReadRate:      w.ReadRate(),
		})
	}
	return out, nil
}

func (i *Interactor) Activity(ctx context.Context, days int) ([]dto.ActivityOutput, error) {
	items, err := i.gateway.Activity(ctx, domain.NormalizeDays(days))
	if err != nil {
		return nil, fmt.Errorf("dashboard activity: %w", err)
	}
	out := make([]dto.ActivityOutput, 0, len(items))
	for _, a := range items {
		out = append(out, dto.ActivityOutput{Type: a.Type, Message: a.Message, Timestamp: a.Timestamp.Time})
	}
	return out, nil
}
