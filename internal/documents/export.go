package documents

import (
	"context"
	"fmt"
	"html"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Export renders a document as a standalone HTML page or as Markdown.
// It returns the content type and body.
func (s *Service) Export(ctx context.Context, ownerID, id string, format ExportFormat) (string, string, error) {
	row, err := s.load(ctx, s.queries, ownerID, id)
	if err != nil {
		return "", "", err
	}
	switch format {
	case ExportMarkdown:
		body, err := RenderMarkdown(row.Title, row.ContentHtml)
		if err != nil {
			return "", "", err
		}
		return "text/markdown; charset=utf-8", body, nil
	case ExportHTML, "":
		return "text/html; charset=utf-8", RenderHTML(row.Title, row.ContentHtml), nil
	default:
		return "", "", fmt.Errorf("unsupported export format: %s", format)
	}
}

func RenderHTML(title, content string) string {
	return `<!DOCTYPE html><html><head><meta charset="utf-8"><title>` +
		html.EscapeString(title) +
		`</title></head><body>` + content + `</body></html>`
}

func RenderMarkdown(title, content string) (string, error) {
	md, err := htmltomarkdown.ConvertString(content)
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}
	md = strings.TrimSpace(md)
	if strings.TrimSpace(title) == "" {
		return md + "\n", nil
	}
	return "# " + title + "\n\n" + md + "\n", nil
}
