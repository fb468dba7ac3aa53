package out

import (
	"context"

	"writerly/internal/modules/works/domain"
)

type Gateway interface {
	Create(ctx context.Context, draft domain.Draft) (domain.Work, error)
	Get(ctx context.Context, id string) (domain.Work, error)
	List(ctx context.Context, skip, limit int) ([]domain.Work, error)
	Update(ctx context.Context, id string, patch domain.Patch) (domain.Work, error)
	Delete(ctx context.Context, id string) error
}

type DocumentReader interface {
	Read(ctx context.Context, path string) (domain.Document, error)
}

type Exporter interface {
	Export(ctx context.Context, dir string, work domain.Work) (string, error)
}
