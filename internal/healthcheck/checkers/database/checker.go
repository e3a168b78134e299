package databasechecker

import (
	"context"
	"log/slog"
	"time"

	"github.com/minidocs/minidocs/internal/healthcheck"
)

const checkTypeDatabase = "database"

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Checker reports whether the document database answers.
type Checker struct {
	logger *slog.Logger
	pinger Pinger
}

func NewChecker(log *slog.Logger, pinger Pinger) *Checker {
	if log == nil {
		log = slog.Default()
	}
	return &Checker{
		logger: log.With(slog.String("checker", "healthcheck_database")),
		pinger: pinger,
	}
}

func (c *Checker) ListChecks(ctx context.Context) []healthcheck.CheckResult {
	item := healthcheck.CheckResult{
		ID:   checkTypeDatabase + ".postgres",
		Type: checkTypeDatabase,
	}
	if c.pinger == nil {
		item.Status = healthcheck.StatusWarn
		item.Summary = "Database checker is not configured."
		return []healthcheck.CheckResult{item}
	}

	start := time.Now()
	err := c.pinger.Ping(ctx)
	latency := time.Since(start)
	item.Metadata = map[string]any{"latency_ms": latency.Milliseconds()}
	if err != nil {
		c.logger.Warn("database ping failed", slog.Any("error", err))
		item.Status = healthcheck.StatusError
		item.Summary = "Database is unreachable."
		item.Detail = err.Error()
		return []healthcheck.CheckResult{item}
	}
	item.Status = healthcheck.StatusOK
	item.Summary = "Database is reachable."
	return []healthcheck.CheckResult{item}
}
