package databasechecker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/minidocs/minidocs/internal/healthcheck"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(ctx context.Context) error { return p.err }

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCheckerListChecks(t *testing.T) {
	t.Parallel()

	items := NewChecker(newTestLogger(), fakePinger{}).ListChecks(context.Background())
	if len(items) != 1 || items[0].Status != healthcheck.StatusOK {
		t.Fatalf("unexpected items: %+v", items)
	}

	items = NewChecker(newTestLogger(), fakePinger{err: errors.New("connection refused")}).ListChecks(context.Background())
	if items[0].Status != healthcheck.StatusError || items[0].Detail != "connection refused" {
		t.Fatalf("unexpected failure item: %+v", items[0])
	}
}

func TestCheckerNilPinger(t *testing.T) {
	t.Parallel()

	items := NewChecker(nil, nil).ListChecks(context.Background())
	if items[0].Status != healthcheck.StatusWarn {
		t.Fatalf("expected warn, got %s", items[0].Status)
	}
}
