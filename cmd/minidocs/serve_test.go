package main

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/minidocs/minidocs/internal/config"
)

func TestProvideConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.toml"))
	t.Setenv("JWT_SECRET", "")
	if _, err := provideConfig(); err == nil {
		t.Fatalf("expected error without jwt secret")
	}

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := provideConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Auth.JWTSecret != "s3cret" {
		t.Fatalf("jwt secret not applied: %q", cfg.Auth.JWTSecret)
	}
}

func TestProvideAIConfig(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.AI.SystemPrompt = "short"
	cfg.AI.Timeout = "7s"

	got := provideAIConfig(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)
	if got.ProviderURL != config.DefaultAIProviderURL || got.Model != config.DefaultAIModel {
		t.Fatalf("unexpected provider settings: %+v", got)
	}
	if got.SystemPrompt != "short" || got.Timeout != 7*time.Second {
		t.Fatalf("unexpected prompt/timeout: %+v", got)
	}
	if got.Temperature != config.DefaultTemperature || got.TopP != config.DefaultTopP {
		t.Fatalf("unexpected sampling: %+v", got)
	}
}
