package documents

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minidocs/minidocs/internal/db/sqlc"
)

const (
	ownerA = "00000000-0000-4000-8000-0000000000aa"
	ownerB = "00000000-0000-4000-8000-0000000000bb"
)

func newTestService() (*Service, *memDB) {
	mem := newMemDB()
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), sqlc.New(mem), nil), mem
}

func TestCreateAddsFirstVersion(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, ownerA, CreateRequest{ContentHTML: "<p>hi</p>"})
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, doc.Title)
	require.Len(t, doc.Versions, 1)
	assert.Equal(t, "v1", doc.Versions[0].Label)
	assert.Equal(t, "<p>hi</p>", doc.Versions[0].ContentHTML)
}

func TestUpdateSnapshotsNextVersion(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, ownerA, CreateRequest{Title: "Plan", ContentHTML: "a"})
	require.NoError(t, err)

	html := "b"
	updated, err := svc.Update(ctx, ownerA, doc.ID, UpdateRequest{ContentHTML: &html})
	require.NoError(t, err)
	assert.Equal(t, "Plan", updated.Title, "title untouched by partial update")
	assert.Equal(t, "b", updated.ContentHTML)

	got, err := svc.Get(ctx, ownerA, doc.ID)
	require.NoError(t, err)
	require.Len(t, got.Versions, 2)
	assert.Equal(t, "v2", got.Versions[0].Label, "newest version first")
	assert.Equal(t, "b", got.Versions[0].ContentHTML)
	assert.Equal(t, "v1", got.Versions[1].Label)
}

func TestSnapshotLabels(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, ownerA, CreateRequest{Title: "x"})
	require.NoError(t, err)

	v, err := svc.Snapshot(ctx, ownerA, doc.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "v2", v.Label)

	v, err = svc.Snapshot(ctx, ownerA, doc.ID, "  release ")
	require.NoError(t, err)
	assert.Equal(t, "release", v.Label)

	versions, err := svc.Versions(ctx, ownerA, doc.ID)
	require.NoError(t, err)
	assert.Len(t, versions, 3)
}

func TestOwnershipIsolation(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, ownerA, CreateRequest{Title: "private"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, ownerB, doc.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, ownerB, doc.ID), ErrNotFound)
	_, err = svc.Snapshot(ctx, ownerB, doc.ID, "")
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := svc.List(ctx, ownerB, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMalformedIDIsNotFound(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	_, err := svc.Get(context.Background(), ownerA, "42")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListFilterAndSoftDelete(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, ownerA, CreateRequest{Title: "Roadmap", ContentHTML: "<p>Q1</p>"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ownerA, CreateRequest{Title: "Notes", ContentHTML: "<p>roadmap draft</p>"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ownerA, CreateRequest{Title: "100% done", ContentHTML: ""})
	require.NoError(t, err)

	all, err := svc.List(ctx, ownerA, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "100% done", all[0].Title, "most recently updated first")

	matched, err := svc.List(ctx, ownerA, "ROADMAP")
	require.NoError(t, err)
	assert.Len(t, matched, 2, "matches title and content case-insensitively")

	literal, err := svc.List(ctx, ownerA, "%")
	require.NoError(t, err)
	require.Len(t, literal, 1, "wildcards are matched literally")

	require.NoError(t, svc.Delete(ctx, ownerA, first.ID))
	assert.ErrorIs(t, svc.Delete(ctx, ownerA, first.ID), ErrNotFound)

	remaining, err := svc.List(ctx, ownerA, "roadmap")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestImportDefaultsTitle(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	doc, err := svc.Import(context.Background(), ownerA, ImportRequest{ContentHTML: "<h1>x</h1>"})
	require.NoError(t, err)
	assert.Equal(t, DefaultImportTitle, doc.Title)
	require.Len(t, doc.Versions, 1)
}

func TestPurgeRemovesOldDeleted(t *testing.T) {
	t.Parallel()
	svc, mem := newTestService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, ownerA, CreateRequest{Title: "gone"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ownerA, CreateRequest{Title: "kept"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, ownerA, doc.ID))

	n, err := svc.Purge(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Len(t, mem.docs, 1)
}

func TestExport(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, ownerA, CreateRequest{Title: "A <b>", ContentHTML: "<h2>Goals</h2><p>Ship <strong>v1</strong></p>"})
	require.NoError(t, err)

	contentType, body, err := svc.Export(ctx, ownerA, doc.ID, ExportHTML)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(contentType, "text/html"))
	assert.Contains(t, body, "<title>A &lt;b&gt;</title>")
	assert.Contains(t, body, "<body><h2>Goals</h2>")

	contentType, body, err = svc.Export(ctx, ownerA, doc.ID, ExportMarkdown)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(contentType, "text/markdown"))
	assert.True(t, strings.HasPrefix(body, "# A <b>\n\n"))
	assert.Contains(t, body, "## Goals")
	assert.Contains(t, body, "**v1**")

	_, _, err = svc.Export(ctx, ownerA, doc.ID, ExportFormat("pdf"))
	assert.Error(t, err)
}
