package db

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
)

func TestParseUUIDRoundTrip(t *testing.T) {
	t.Parallel()
	const id = "3fef88a0-8eae-4c40-bf3e-9737f2f44684"
	parsed, err := ParseUUID(id)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !parsed.Valid {
		t.Fatal("expected valid uuid")
	}
	if got := UUIDString(parsed); got != id {
		t.Fatalf("round trip = %q, want %q", got, id)
	}
	if _, err := ParseUUID("not-a-uuid"); err == nil {
		t.Fatal("expected error for malformed id")
	}
	if got := UUIDString(pgtype.UUID{}); got != "" {
		t.Fatalf("null uuid should render empty, got %q", got)
	}
}

func TestMigrateURL(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"postgres://u:p@h:5432/d?sslmode=disable": "pgx5://u:p@h:5432/d?sslmode=disable",
		"postgresql://u@h/d":                      "pgx5://u@h/d",
		"pgx5://already":                          "pgx5://already",
	}
	for in, want := range cases {
		if got := migrateURL(in); got != want {
			t.Fatalf("migrateURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	t.Parallel()
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) < 2 {
		t.Fatalf("expected up and down migrations, got %d files", len(entries))
	}
}
