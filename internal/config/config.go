package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath       = "config.toml"
	DefaultHTTPAddr         = ":8080"
	DefaultJWTExpiresIn     = "72h"
	DefaultRefreshExpiresIn = "720h"
	DefaultPGHost           = "127.0.0.1"
	DefaultPGPort           = 5432
	DefaultPGUser           = "postgres"
	DefaultPGDatabase       = "minidocs"
	DefaultPGSSLMode        = "disable"
	DefaultAIProviderURL    = "https://router.huggingface.co/v1/chat/completions"
	DefaultAIModel          = "openai/gpt-oss-120b:cerebras"
	DefaultAITimeout        = "120s"
	DefaultTemperature      = 0.7
	DefaultTopP             = 0.95
	DefaultPurgeAfter       = "720h"
)

type Config struct {
	Log       LogConfig       `toml:"log" yaml:"log"`
	Server    ServerConfig    `toml:"server" yaml:"server"`
	Admin     AdminConfig     `toml:"admin" yaml:"admin"`
	Auth      AuthConfig      `toml:"auth" yaml:"auth"`
	Postgres  PostgresConfig  `toml:"postgres" yaml:"postgres"`
	AI        AIConfig        `toml:"ai" yaml:"ai"`
	Documents DocumentsConfig `toml:"documents" yaml:"documents"`
}

type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

type ServerConfig struct {
	Addr           string   `toml:"addr" yaml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins" yaml:"allowed_origins"`
}

type AdminConfig struct {
	Username string `toml:"username" yaml:"username"`
	Password string `toml:"password" yaml:"password"`
}

type AuthConfig struct {
	JWTSecret        string `toml:"jwt_secret" yaml:"jwt_secret"`
	JWTExpiresIn     string `toml:"jwt_expires_in" yaml:"jwt_expires_in"`
	RefreshExpiresIn string `toml:"refresh_expires_in" yaml:"refresh_expires_in"`
}

// AccessTTL parses JWTExpiresIn, falling back to the default on bad input.
func (c AuthConfig) AccessTTL() time.Duration {
	return parseDurationOr(c.JWTExpiresIn, DefaultJWTExpiresIn)
}

func (c AuthConfig) RefreshTTL() time.Duration {
	return parseDurationOr(c.RefreshExpiresIn, DefaultRefreshExpiresIn)
}

type PostgresConfig struct {
	URL      string `toml:"url" yaml:"url"`
	Host     string `toml:"host" yaml:"host"`
	Port     int    `toml:"port" yaml:"port"`
	User     string `toml:"user" yaml:"user"`
	Password string `toml:"password" yaml:"password"`
	Database string `toml:"database" yaml:"database"`
	SSLMode  string `toml:"sslmode" yaml:"sslmode"`
}

// DSN returns URL when set, otherwise a postgres:// URL built from the parts.
func (c PostgresConfig) DSN() string {
	if strings.TrimSpace(c.URL) != "" {
		return c.URL
	}
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = DefaultPGSSLMode
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s", c.User, c.Password, c.Host, c.Port, c.Database, sslMode)
}

type AIConfig struct {
	ProviderURL  string  `toml:"provider_url" yaml:"provider_url"`
	APIKey       string  `toml:"api_key" yaml:"api_key"`
	Model        string  `toml:"model" yaml:"model"`
	SystemPrompt string  `toml:"system_prompt" yaml:"system_prompt"`
	Temperature  float64 `toml:"temperature" yaml:"temperature"`
	TopP         float64 `toml:"top_p" yaml:"top_p"`
	Timeout      string  `toml:"timeout" yaml:"timeout"`
}

func (c AIConfig) RequestTimeout() time.Duration {
	return parseDurationOr(c.Timeout, DefaultAITimeout)
}

type DocumentsConfig struct {
	PurgeSchedule string `toml:"purge_schedule" yaml:"purge_schedule"`
	PurgeAfter    string `toml:"purge_after" yaml:"purge_after"`
}

func (c DocumentsConfig) PurgeAge() time.Duration {
	return parseDurationOr(c.PurgeAfter, DefaultPurgeAfter)
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr:           DefaultHTTPAddr,
			AllowedOrigins: []string{"*"},
		},
		Admin: AdminConfig{
			Username: "admin",
		},
		Auth: AuthConfig{
			JWTExpiresIn:     DefaultJWTExpiresIn,
			RefreshExpiresIn: DefaultRefreshExpiresIn,
		},
		Postgres: PostgresConfig{
			Host:     DefaultPGHost,
			Port:     DefaultPGPort,
			User:     DefaultPGUser,
			Database: DefaultPGDatabase,
			SSLMode:  DefaultPGSSLMode,
		},
		AI: AIConfig{
			ProviderURL: DefaultAIProviderURL,
			Model:       DefaultAIModel,
			Temperature: DefaultTemperature,
			TopP:        DefaultTopP,
			Timeout:     DefaultAITimeout,
		},
		Documents: DocumentsConfig{
			PurgeAfter: DefaultPurgeAfter,
		},
	}
}

// Load reads the config file at path (TOML, or YAML for .yaml/.yml) over
// the defaults and then applies environment overrides. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return cfg, err
		}
	} else if err := decodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return yaml.Unmarshal(raw, cfg)
	default:
		_, err := toml.DecodeFile(path, cfg)
		return err
	}
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("AI_PROVIDER_URL")); v != "" {
		cfg.AI.ProviderURL = v
	}
	if v := strings.TrimSpace(os.Getenv("AI_API_KEY")); v != "" {
		cfg.AI.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("JWT_SECRET")); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		cfg.Postgres.URL = v
	}
}

func parseDurationOr(raw, fallback string) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(raw)); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(fallback)
	return d
}
