package documents

import (
	"errors"
	"time"
)

const (
	DefaultTitle       = "Без названия"
	DefaultImportTitle = "Импортированный документ"
)

var ErrNotFound = errors.New("document not found")

// Document is a user-owned HTML document.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	ContentHTML string    `json:"content_html"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Versions    []Version `json:"versions,omitempty"`
}

// Version is an immutable snapshot of a document's content.
type Version struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	ContentHTML string    `json:"content_html"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateRequest struct {
	Title       string `json:"title" validate:"max=255"`
	ContentHTML string `json:"content_html"`
}

// UpdateRequest carries a partial update; nil fields are left untouched.
type UpdateRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=255"`
	ContentHTML *string `json:"content_html,omitempty"`
}

type SnapshotRequest struct {
	Label string `json:"label" validate:"max=32"`
}

type SnapshotResponse struct {
	OK    bool   `json:"ok"`
	Label string `json:"label"`
}

type ImportRequest struct {
	Title       string `json:"title" validate:"max=255"`
	ContentHTML string `json:"content_html"`
}

// ExportFormat selects the export rendition.
type ExportFormat string

const (
	ExportHTML     ExportFormat = "html"
	ExportMarkdown ExportFormat = "markdown"
)
