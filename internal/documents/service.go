package documents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/minidocs/minidocs/internal/db"
	"github.com/minidocs/minidocs/internal/db/sqlc"
)

// Beginner starts transactions; *pgxpool.Pool satisfies it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Service stores documents and their version snapshots.
type Service struct {
	queries  *sqlc.Queries
	beginner Beginner
	logger   *slog.Logger
}

// NewService creates a document service. beginner may be nil, in which
// case multi-statement operations run without a transaction.
func NewService(log *slog.Logger, queries *sqlc.Queries, beginner Beginner) *Service {
	return &Service{
		queries:  queries,
		beginner: beginner,
		logger:   log.With(slog.String("service", "documents")),
	}
}

// List returns the owner's live documents, newest first. A non-empty
// filter matches title or content case-insensitively.
func (s *Service) List(ctx context.Context, ownerID, filter string) ([]Document, error) {
	owner, err := db.ParseUUID(ownerID)
	if err != nil {
		return nil, err
	}
	rows, err := s.queries.ListDocumentsByOwner(ctx, sqlc.ListDocumentsByOwnerParams{
		OwnerID: owner,
		Pattern: escapeLike(strings.TrimSpace(filter)),
	})
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	items := make([]Document, 0, len(rows))
	for _, row := range rows {
		items = append(items, toDocument(row))
	}
	return items, nil
}

// Create stores a new document together with its first version "v1".
func (s *Service) Create(ctx context.Context, ownerID string, req CreateRequest) (Document, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = DefaultTitle
	}
	return s.create(ctx, ownerID, title, req.ContentHTML)
}

// Import stores externally produced HTML as a new document.
func (s *Service) Import(ctx context.Context, ownerID string, req ImportRequest) (Document, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = DefaultImportTitle
	}
	return s.create(ctx, ownerID, title, req.ContentHTML)
}

func (s *Service) create(ctx context.Context, ownerID, title, html string) (Document, error) {
	owner, err := db.ParseUUID(ownerID)
	if err != nil {
		return Document{}, err
	}
	var doc Document
	err = s.withTx(ctx, func(q *sqlc.Queries) error {
		row, err := q.CreateDocument(ctx, sqlc.CreateDocumentParams{
			OwnerID:     owner,
			Title:       title,
			ContentHtml: html,
		})
		if err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		version, err := q.CreateDocumentVersion(ctx, sqlc.CreateDocumentVersionParams{
			DocumentID:  row.ID,
			Label:       "v1",
			ContentHtml: row.ContentHtml,
		})
		if err != nil {
			return fmt.Errorf("create first version: %w", err)
		}
		doc = toDocument(row)
		doc.Versions = []Version{toVersion(version)}
		return nil
	})
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Get returns one document with its versions.
func (s *Service) Get(ctx context.Context, ownerID, id string) (Document, error) {
	row, err := s.load(ctx, s.queries, ownerID, id)
	if err != nil {
		return Document{}, err
	}
	versions, err := s.listVersions(ctx, s.queries, row.ID)
	if err != nil {
		return Document{}, err
	}
	doc := toDocument(row)
	doc.Versions = versions
	return doc, nil
}

// Update applies a partial update and snapshots the result as v{n+1}.
func (s *Service) Update(ctx context.Context, ownerID, id string, req UpdateRequest) (Document, error) {
	var doc Document
	err := s.withTx(ctx, func(q *sqlc.Queries) error {
		existing, err := s.load(ctx, q, ownerID, id)
		if err != nil {
			return err
		}
		title := existing.Title
		if req.Title != nil {
			title = strings.TrimSpace(*req.Title)
			if title == "" {
				title = DefaultTitle
			}
		}
		html := existing.ContentHtml
		if req.ContentHTML != nil {
			html = *req.ContentHTML
		}
		row, err := q.UpdateDocument(ctx, sqlc.UpdateDocumentParams{
			ID:          existing.ID,
			OwnerID:     existing.OwnerID,
			Title:       title,
			ContentHtml: html,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("update document: %w", err)
		}
		if _, err := s.snapshot(ctx, q, row, ""); err != nil {
			return err
		}
		doc = toDocument(row)
		return nil
	})
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Delete marks the document deleted without removing it.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	owner, err := db.ParseUUID(ownerID)
	if err != nil {
		return err
	}
	docID, err := db.ParseUUID(id)
	if err != nil {
		return ErrNotFound
	}
	affected, err := s.queries.SoftDeleteDocument(ctx, sqlc.SoftDeleteDocumentParams{ID: docID, OwnerID: owner})
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Snapshot records the current content as a version. An empty label
// becomes v{n+1} where n is the number of existing versions.
func (s *Service) Snapshot(ctx context.Context, ownerID, id, label string) (Version, error) {
	var version Version
	err := s.withTx(ctx, func(q *sqlc.Queries) error {
		row, err := s.load(ctx, q, ownerID, id)
		if err != nil {
			return err
		}
		version, err = s.snapshot(ctx, q, row, label)
		return err
	})
	if err != nil {
		return Version{}, err
	}
	return version, nil
}

// Versions lists a document's snapshots, newest first.
func (s *Service) Versions(ctx context.Context, ownerID, id string) ([]Version, error) {
	row, err := s.load(ctx, s.queries, ownerID, id)
	if err != nil {
		return nil, err
	}
	return s.listVersions(ctx, s.queries, row.ID)
}

// Purge permanently removes documents soft-deleted before olderThan ago.
func (s *Service) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	n, err := s.queries.PurgeDeletedDocuments(ctx, pgtype.Timestamptz{Time: cutoff, Valid: true})
	if err != nil {
		return 0, fmt.Errorf("purge documents: %w", err)
	}
	return n, nil
}

func (s *Service) snapshot(ctx context.Context, q *sqlc.Queries, row sqlc.Document, label string) (Version, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		count, err := q.CountDocumentVersions(ctx, row.ID)
		if err != nil {
			return Version{}, fmt.Errorf("count versions: %w", err)
		}
		label = fmt.Sprintf("v%d", count+1)
	}
	version, err := q.CreateDocumentVersion(ctx, sqlc.CreateDocumentVersionParams{
		DocumentID:  row.ID,
		Label:       label,
		ContentHtml: row.ContentHtml,
	})
	if err != nil {
		return Version{}, fmt.Errorf("create version: %w", err)
	}
	return toVersion(version), nil
}

func (s *Service) load(ctx context.Context, q *sqlc.Queries, ownerID, id string) (sqlc.Document, error) {
	owner, err := db.ParseUUID(ownerID)
	if err != nil {
		return sqlc.Document{}, err
	}
	docID, err := db.ParseUUID(id)
	if err != nil {
		return sqlc.Document{}, ErrNotFound
	}
	row, err := q.GetDocumentForOwner(ctx, sqlc.GetDocumentForOwnerParams{ID: docID, OwnerID: owner})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sqlc.Document{}, ErrNotFound
		}
		return sqlc.Document{}, fmt.Errorf("get document: %w", err)
	}
	return row, nil
}

func (s *Service) listVersions(ctx context.Context, q *sqlc.Queries, docID pgtype.UUID) ([]Version, error) {
	rows, err := q.ListDocumentVersions(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	versions := make([]Version, 0, len(rows))
	for _, row := range rows {
		versions = append(versions, toVersion(row))
	}
	return versions, nil
}

func (s *Service) withTx(ctx context.Context, fn func(q *sqlc.Queries) error) error {
	if s.beginner == nil {
		return fn(s.queries)
	}
	tx, err := s.beginner.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			s.logger.Warn("rollback failed", slog.Any("error", rbErr))
		}
	}()
	if err := fn(s.queries.WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// escapeLike quotes ILIKE wildcards so the filter matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func toDocument(row sqlc.Document) Document {
	return Document{
		ID:          db.UUIDString(row.ID),
		Title:       row.Title,
		ContentHTML: row.ContentHtml,
		IsDeleted:   row.IsDeleted,
		CreatedAt:   db.Time(row.CreatedAt),
		UpdatedAt:   db.Time(row.UpdatedAt),
	}
}

func toVersion(row sqlc.DocumentVersion) Version {
	return Version{
		ID:          db.UUIDString(row.ID),
		Label:       row.Label,
		ContentHTML: row.ContentHtml,
		CreatedAt:   db.Time(row.CreatedAt),
	}
}
