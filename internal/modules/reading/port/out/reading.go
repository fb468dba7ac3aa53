package out

import (
	"context"

	"writerly/internal/modules/reading/domain"
)

type Gateway interface {
	Start(ctx context.Context, workID, sectionID string) (string, error)
	Update(ctx context.Context, sessionID string, progress domain.Progress) error
	Complete(ctx context.Context, sessionID string) (domain.Unlocks, error)
	Validation(ctx context.Context, workID string) (domain.Unlocks, error)
}

type HistoryStore interface {
	Record(ctx context.Context, entry domain.HistoryEntry) error
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)
}
