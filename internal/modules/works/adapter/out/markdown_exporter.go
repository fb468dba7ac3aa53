package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"writerly/internal/modules/works/domain"
	worksout "writerly/internal/modules/works/port/out"
	"writerly/internal/platform/markdown"
	"writerly/internal/platform/slug"
)

type MarkdownExporter struct{}

func NewMarkdownExporter() worksout.Exporter {
	return &MarkdownExporter{}
}

type exportMeta struct {
	Title         string `yaml:"title"`
	Author        string `yaml:"author,omitempty"`
	Genre         string `yaml:"genre,omitempty"`
	Summary       string `yaml:"summary,omitempty"`
	ContentRating string `yaml:"content_rating,omitempty"`
	Status        string `yaml:"status,omitempty"`
	WordCount     int    `yaml:"word_count"`
	WorkID        string `yaml:"work_id"`
	CreatedAt     string `yaml:"created_at,omitempty"`
}

func (e *MarkdownExporter) Export(_ context.Context, dir string, work domain.Work) (string, error) {
	meta := exportMeta{
		Title:         work.Title,
		Author:        work.AuthorUsername,
		Genre:         work.Genre,
		Summary:       work.Summary,
		ContentRating: work.ContentRating,
		Status:        work.Status,
		WordCount:     work.WordCount,
		WorkID:        work.ID,
	}
	if !work.CreatedAt.IsZero() {
		meta.CreatedAt = work.CreatedAt.Format("2006-01-02")
	}
	rendered, err := markdown.RenderFrontmatter(meta, work.Content)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, slug.Make(work.Title)+".md")
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
