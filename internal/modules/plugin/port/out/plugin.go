package out

import (
	"context"

	"writerly/internal/modules/plugin/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	ListCommands(ctx context.Context, manifest domain.Manifest) ([]domain.CommandDescriptor, error)
	Analyze(ctx context.Context, manifest domain.Manifest, input domain.AnalyzeRequest) (domain.AnalyzeResult, error)
}

// WorkSource loads the work an analyzer runs over.
type WorkSource interface {
	Work(ctx context.Context, workID string) (domain.WorkInput, error)
}
