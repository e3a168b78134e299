package aiproviderchecker

import (
	"context"
	"testing"

	"github.com/minidocs/minidocs/internal/aiproxy"
	"github.com/minidocs/minidocs/internal/healthcheck"
)

func TestCheckerListChecks(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cfg  aiproxy.Config
		want string
	}{
		{"missing url", aiproxy.Config{}, healthcheck.StatusError},
		{"bad scheme", aiproxy.Config{ProviderURL: "ftp://x/y"}, healthcheck.StatusError},
		{"no key", aiproxy.Config{ProviderURL: "https://router.example/v1/chat/completions"}, healthcheck.StatusWarn},
		{"ok", aiproxy.Config{ProviderURL: "https://router.example/v1/chat/completions", APIKey: "k", Model: "m"}, healthcheck.StatusOK},
	}
	for _, tc := range cases {
		items := NewChecker(tc.cfg).ListChecks(context.Background())
		if len(items) != 1 || items[0].Status != tc.want {
			t.Fatalf("%s: want %s got %+v", tc.name, tc.want, items)
		}
	}
}
