package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rsc.io/pdf"

	"writerly/internal/modules/works/domain"
	worksout "writerly/internal/modules/works/port/out"
	"writerly/internal/platform/markdown"
)

// LocalDocumentReader loads manuscripts from disk. Markdown may carry
// title, genre, summary and content_rating in YAML frontmatter; plain text
// and PDF files supply only the body.
type LocalDocumentReader struct{}

func NewLocalDocumentReader() worksout.DocumentReader {
	return &LocalDocumentReader{}
}

func (r *LocalDocumentReader) Read(_ context.Context, path string) (domain.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return readMarkdown(path)
	case ".txt", "":
		b, err := os.ReadFile(path)
		if err != nil {
			return domain.Document{}, fmt.Errorf("read text: %w", err)
		}
		return domain.Document{Path: path, Body: string(b)}, nil
	case ".pdf":
		return readPDF(path)
	default:
		return domain.Document{}, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

func readMarkdown(path string) (domain.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("read markdown: %w", err)
	}
	meta, body, err := markdown.SplitFrontmatter(string(b))
	if err != nil {
		return domain.Document{}, err
	}
	return domain.Document{
		Path:    path,
		Title:   markdown.StringField(meta, "title"),
		Genre:   markdown.StringField(meta, "genre"),
		Summary: markdown.StringField(meta, "summary"),
		Rating:  markdown.StringField(meta, "content_rating"),
		Body:    body,
	}, nil
}

func readPDF(path string) (domain.Document, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("open pdf: %w", err)
	}
	pages := make([]string, 0, doc.NumPage())
	for n := 1; n <= doc.NumPage(); n++ {
		p := doc.Page(n)
		if p.V.IsNull() {
			continue
		}
		parts := []string{}
		for _, text := range p.Content().Text {
			if strings.TrimSpace(text.S) == "" {
				continue
			}
			parts = append(parts, text.S)
		}
		if len(parts) > 0 {
			pages = append(pages, strings.Join(parts, " "))
		}
	}
	title := ""
	if info := doc.Trailer().Key("Info"); !info.IsNull() {
		title = strings.TrimSpace(info.Key("Title").Text())
	}
	return domain.Document{Path: path, Title: title, Body: strings.Join(pages, "\n\n")}, nil
}
