package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/minidocs/minidocs/internal/accounts"
	"github.com/minidocs/minidocs/internal/aiproxy"
	"github.com/minidocs/minidocs/internal/config"
	"github.com/minidocs/minidocs/internal/db"
	dbsqlc "github.com/minidocs/minidocs/internal/db/sqlc"
	"github.com/minidocs/minidocs/internal/documents"
	"github.com/minidocs/minidocs/internal/handlers"
	"github.com/minidocs/minidocs/internal/healthcheck"
	aiproviderchecker "github.com/minidocs/minidocs/internal/healthcheck/checkers/aiprovider"
	databasechecker "github.com/minidocs/minidocs/internal/healthcheck/checkers/database"
	"github.com/minidocs/minidocs/internal/logger"
	"github.com/minidocs/minidocs/internal/server"
	"github.com/minidocs/minidocs/internal/version"
)

func runServe() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			provideDBConn,
			provideDBQueries,
			provideAIConfig,
			aiproxy.NewBuilder,
			aiproxy.NewRelay,
			accounts.NewService,
			provideDocumentsService,
			provideDocumentsPurger,
			provideHealthRunner,
			provideServerHandler(handlers.NewPingHandler),
			provideServerHandler(handlers.NewHealthHandler),
			provideServerHandler(provideAuthHandler),
			provideServerHandler(handlers.NewDocumentsHandler),
			provideServerHandler(handlers.NewAIHandler),
			provideServer,
		),
		fx.Invoke(
			startDocumentsPurger,
			startServer,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
	).Run()
}

func provideServerHandler(fn any) any {
	return fx.Annotate(
		fn,
		fx.As(new(server.Handler)),
		fx.ResultTags(`group:"server_handlers"`),
	)
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideConfig() (config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return config.Config{}, err
	}
	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return config.Config{}, fmt.Errorf("auth.jwt_secret is required")
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideDBConn(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	conn, err := db.Open(context.Background(), cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	lc.Append(fx.Hook{OnStop: func(ctx context.Context) error { conn.Close(); return nil }})
	return conn, nil
}

func provideDBQueries(conn *pgxpool.Pool) *dbsqlc.Queries { return dbsqlc.New(conn) }

// provideAIConfig resolves the provider endpoint and system prompt once;
// every request shares the result read-only.
func provideAIConfig(log *slog.Logger, cfg config.Config) aiproxy.Config {
	ai := cfg.AI
	if strings.TrimSpace(ai.ProviderURL) == "" {
		log.Warn("ai.provider_url is empty; AI endpoints will answer 502")
	}
	return aiproxy.Config{
		ProviderURL:  ai.ProviderURL,
		APIKey:       ai.APIKey,
		Model:        ai.Model,
		SystemPrompt: ai.SystemPrompt,
		Temperature:  ai.Temperature,
		TopP:         ai.TopP,
		Timeout:      ai.RequestTimeout(),
	}
}

func provideDocumentsService(log *slog.Logger, queries *dbsqlc.Queries, conn *pgxpool.Pool) *documents.Service {
	return documents.NewService(log, queries, conn)
}
func provideDocumentsPurger(log *slog.Logger, service *documents.Service, cfg config.Config) *documents.Purger {
	return documents.NewPurger(log, service, cfg.Documents.PurgeAge())
}
func provideHealthRunner(log *slog.Logger, conn *pgxpool.Pool, aiCfg aiproxy.Config) *healthcheck.Runner {
	return healthcheck.NewRunner(0,
		databasechecker.NewChecker(log, conn),
		aiproviderchecker.NewChecker(aiCfg),
	)
}

func provideAuthHandler(log *slog.Logger, accountService *accounts.Service, cfg config.Config) *handlers.AuthHandler {
	return handlers.NewAuthHandler(log, accountService, cfg.Auth.JWTSecret, cfg.Auth.AccessTTL(), cfg.Auth.RefreshTTL())
}

type serverParams struct {
	fx.In
	Logger         *slog.Logger
	Config         config.Config
	ServerHandlers []server.Handler `group:"server_handlers"`
}

func provideServer(params serverParams) *server.Server {
	return server.NewServer(params.Logger, server.Options{
		Addr:           params.Config.Server.Addr,
		JWTSecret:      params.Config.Auth.JWTSecret,
		AllowedOrigins: params.Config.Server.AllowedOrigins,
	}, params.ServerHandlers)
}

func startDocumentsPurger(lc fx.Lifecycle, purger *documents.Purger, cfg config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error { return purger.Start(cfg.Documents.PurgeSchedule) },
		OnStop:  func(ctx context.Context) error { return purger.Stop(ctx) },
	})
}

func startServer(lc fx.Lifecycle, logger *slog.Logger, srv *server.Server, shutdowner fx.Shutdowner, cfg config.Config, accountService *accounts.Service) {
	fmt.Printf("Starting minidocs %s\n", version.GetInfo())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := ensureAdminUser(ctx, logger, accountService, cfg); err != nil {
				return err
			}
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			logger.Info("server listening", slog.String("addr", cfg.Server.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Stop(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stop: %w", err)
			}
			return nil
		},
	})
}

func ensureAdminUser(ctx context.Context, log *slog.Logger, accountService *accounts.Service, cfg config.Config) error {
	username := strings.TrimSpace(cfg.Admin.Username)
	password := strings.TrimSpace(cfg.Admin.Password)
	if username == "" || password == "" {
		log.Info("admin bootstrap skipped; set admin.username and admin.password to create one")
		return nil
	}
	if password == "change-your-password-here" {
		log.Warn("admin password uses default placeholder; please update config.toml")
	}
	if _, err := accountService.EnsureUser(ctx, username, password); err != nil {
		return fmt.Errorf("ensure admin user: %w", err)
	}
	return nil
}
