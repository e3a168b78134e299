package documents

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// memDB is an in-memory sqlc.DBTX that understands the document queries.
type memDB struct {
	mu       sync.Mutex
	seq      byte
	clock    time.Time
	docs     []*memDoc
	versions []*memVersion
}

type memDoc struct {
	id, owner          pgtype.UUID
	title, html        string
	deleted            bool
	deletedAt          pgtype.Timestamptz
	createdAt, updated time.Time
}

type memVersion struct {
	id, doc   pgtype.UUID
	label     string
	html      string
	createdAt time.Time
}

func newMemDB() *memDB {
	return &memDB{clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memDB) nextID() pgtype.UUID {
	m.seq++
	var b [16]byte
	b[15] = m.seq
	b[6] = 0x40
	b[8] = 0x80
	return pgtype.UUID{Bytes: b, Valid: true}
}

func (m *memDB) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func queryName(sql string) string {
	sql = strings.TrimPrefix(sql, "-- name: ")
	if i := strings.IndexByte(sql, ' '); i > 0 {
		return sql[:i]
	}
	return sql
}

func (m *memDB) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch queryName(sql) {
	case "SoftDeleteDocument":
		id, owner := args[0].(pgtype.UUID), args[1].(pgtype.UUID)
		for _, d := range m.docs {
			if d.id == id && d.owner == owner && !d.deleted {
				d.deleted = true
				d.deletedAt = pgtype.Timestamptz{Time: m.tick(), Valid: true}
				return pgconn.NewCommandTag("UPDATE 1"), nil
			}
		}
		return pgconn.NewCommandTag("UPDATE 0"), nil
	case "PurgeDeletedDocuments":
		cutoff := args[0].(pgtype.Timestamptz).Time
		kept := m.docs[:0]
		var n int
		for _, d := range m.docs {
			if d.deleted && d.deletedAt.Time.Before(cutoff) {
				n++
				continue
			}
			kept = append(kept, d)
		}
		m.docs = kept
		return pgconn.NewCommandTag(fmt.Sprintf("DELETE %d", n)), nil
	}
	return pgconn.CommandTag{}, fmt.Errorf("unexpected exec %q", queryName(sql))
}

func (m *memDB) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch queryName(sql) {
	case "ListDocumentsByOwner":
		owner := args[0].(pgtype.UUID)
		pattern := unescapeLike(strings.ToLower(args[1].(string)))
		var out []*memDoc
		for _, d := range m.docs {
			if d.owner != owner || d.deleted {
				continue
			}
			if pattern != "" && !strings.Contains(strings.ToLower(d.title), pattern) && !strings.Contains(strings.ToLower(d.html), pattern) {
				continue
			}
			out = append(out, d)
		}
		// updated_at desc
		for i := 0; i < len(out); i++ {
			for j := i + 1; j < len(out); j++ {
				if out[j].updated.After(out[i].updated) {
					out[i], out[j] = out[j], out[i]
				}
			}
		}
		rows := &memRows{}
		for _, d := range out {
			rows.values = append(rows.values, d.values())
		}
		return rows, nil
	case "ListDocumentVersions":
		doc := args[0].(pgtype.UUID)
		rows := &memRows{}
		for i := len(m.versions) - 1; i >= 0; i-- {
			if v := m.versions[i]; v.doc == doc {
				rows.values = append(rows.values, v.values())
			}
		}
		return rows, nil
	}
	return nil, fmt.Errorf("unexpected query %q", queryName(sql))
}

func (m *memDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch queryName(sql) {
	case "CreateDocument":
		now := m.tick()
		d := &memDoc{
			id:        m.nextID(),
			owner:     args[0].(pgtype.UUID),
			title:     args[1].(string),
			html:      args[2].(string),
			createdAt: now,
			updated:   now,
		}
		m.docs = append(m.docs, d)
		return memRow{values: d.values()}
	case "GetDocumentForOwner":
		if d := m.find(args[0].(pgtype.UUID), args[1].(pgtype.UUID)); d != nil {
			return memRow{values: d.values()}
		}
		return memRow{err: pgx.ErrNoRows}
	case "UpdateDocument":
		d := m.find(args[0].(pgtype.UUID), args[1].(pgtype.UUID))
		if d == nil {
			return memRow{err: pgx.ErrNoRows}
		}
		d.title = args[2].(string)
		d.html = args[3].(string)
		d.updated = m.tick()
		return memRow{values: d.values()}
	case "CreateDocumentVersion":
		v := &memVersion{
			id:        m.nextID(),
			doc:       args[0].(pgtype.UUID),
			label:     args[1].(string),
			html:      args[2].(string),
			createdAt: m.tick(),
		}
		m.versions = append(m.versions, v)
		return memRow{values: v.values()}
	case "CountDocumentVersions":
		doc := args[0].(pgtype.UUID)
		var n int64
		for _, v := range m.versions {
			if v.doc == doc {
				n++
			}
		}
		return memRow{values: []any{n}}
	}
	return memRow{err: fmt.Errorf("unexpected query row %q", queryName(sql))}
}

func (m *memDB) find(id, owner pgtype.UUID) *memDoc {
	for _, d := range m.docs {
		if d.id == id && d.owner == owner && !d.deleted {
			return d
		}
	}
	return nil
}

func (d *memDoc) values() []any {
	return []any{
		d.id, d.owner, d.title, d.html, d.deleted, d.deletedAt,
		pgtype.Timestamptz{Time: d.createdAt, Valid: true},
		pgtype.Timestamptz{Time: d.updated, Valid: true},
	}
}

func (v *memVersion) values() []any {
	return []any{v.id, v.doc, v.label, v.html, pgtype.Timestamptz{Time: v.createdAt, Valid: true}}
}

func unescapeLike(s string) string {
	return strings.NewReplacer(`\\`, `\`, `\%`, `%`, `\_`, `_`).Replace(s)
}

type memRow struct {
	values []any
	err    error
}

func (r memRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(dest, r.values)
}

type memRows struct {
	values [][]any
	idx    int
}

func (r *memRows) Close()                                       {}
func (r *memRows) Err() error                                   { return nil }
func (r *memRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *memRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *memRows) RawValues() [][]byte                          { return nil }
func (r *memRows) Conn() *pgx.Conn                              { return nil }

func (r *memRows) Next() bool {
	r.idx++
	return r.idx <= len(r.values)
}

func (r *memRows) Scan(dest ...any) error {
	return assign(dest, r.values[r.idx-1])
}

func (r *memRows) Values() ([]any, error) {
	return r.values[r.idx-1], nil
}

func assign(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(values))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *pgtype.UUID:
			*p = values[i].(pgtype.UUID)
		case *pgtype.Timestamptz:
			*p = values[i].(pgtype.Timestamptz)
		case *string:
			*p = values[i].(string)
		case *bool:
			*p = values[i].(bool)
		case *int64:
			*p = values[i].(int64)
		default:
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
	}
	return nil
}
