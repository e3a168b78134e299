package aiproviderchecker

import (
	"context"
	"net/url"
	"strings"

	"github.com/minidocs/minidocs/internal/aiproxy"
	"github.com/minidocs/minidocs/internal/healthcheck"
)

const checkTypeAIProvider = "ai.provider"

// Checker validates the upstream AI configuration. It never calls the
// provider.
type Checker struct {
	cfg aiproxy.Config
}

func NewChecker(cfg aiproxy.Config) *Checker {
	return &Checker{cfg: cfg}
}

func (c *Checker) ListChecks(ctx context.Context) []healthcheck.CheckResult {
	item := healthcheck.CheckResult{
		ID:   checkTypeAIProvider + ".config",
		Type: checkTypeAIProvider,
	}
	raw := strings.TrimSpace(c.cfg.ProviderURL)
	if raw == "" {
		item.Status = healthcheck.StatusError
		item.Summary = "AI provider URL is not configured."
		return []healthcheck.CheckResult{item}
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		item.Status = healthcheck.StatusError
		item.Summary = "AI provider URL is invalid."
		if err != nil {
			item.Detail = err.Error()
		}
		return []healthcheck.CheckResult{item}
	}
	item.Metadata = map[string]any{"host": u.Host}
	if c.cfg.Model != "" {
		item.Metadata["model"] = c.cfg.Model
	}
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		item.Status = healthcheck.StatusWarn
		item.Summary = "AI provider has no API key; requests are sent unauthenticated."
		return []healthcheck.CheckResult{item}
	}
	item.Status = healthcheck.StatusOK
	item.Summary = "AI provider is configured."
	return []healthcheck.CheckResult{item}
}
