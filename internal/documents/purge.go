package documents

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Purger periodically removes soft-deleted documents past retention.
type Purger struct {
	service *Service
	logger  *slog.Logger
	cron    *cron.Cron
	age     time.Duration
}

func NewPurger(log *slog.Logger, service *Service, age time.Duration) *Purger {
	return &Purger{
		service: service,
		logger:  log.With(slog.String("service", "documents_purger")),
		cron:    cron.New(),
		age:     age,
	}
}

// Start schedules the purge job. An empty spec disables it.
func (p *Purger) Start(spec string) error {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		p.logger.Info("document purge disabled")
		return nil
	}
	if _, err := p.cron.AddFunc(spec, p.run); err != nil {
		return fmt.Errorf("schedule purge %q: %w", spec, err)
	}
	p.cron.Start()
	p.logger.Info("document purge scheduled", slog.String("spec", spec), slog.Duration("after", p.age))
	return nil
}

// Stop waits for a running purge to finish or ctx to expire.
func (p *Purger) Stop(ctx context.Context) error {
	done := p.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Purger) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	n, err := p.service.Purge(ctx, p.age)
	if err != nil {
		p.logger.Error("document purge failed", slog.Any("error", err))
		return
	}
	if n > 0 {
		p.logger.Info("purged deleted documents", slog.Int64("count", n))
	}
}
