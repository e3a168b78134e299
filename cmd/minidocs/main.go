package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/minidocs/minidocs/internal/accounts"
	"github.com/minidocs/minidocs/internal/auth"
	"github.com/minidocs/minidocs/internal/config"
	"github.com/minidocs/minidocs/internal/db"
	dbsqlc "github.com/minidocs/minidocs/internal/db/sqlc"
	"github.com/minidocs/minidocs/internal/logger"
	"github.com/minidocs/minidocs/internal/version"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "minidocs",
	Short: "Document editor backend with an AI editing proxy",
	Long: `minidocs serves versioned HTML documents and relays editor requests
(generate, rewrite, continue, outline) to a chat-completion provider,
optionally streaming the answer back as server-sent events.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if configPath != "" {
			_ = os.Setenv("CONFIG_PATH", configPath)
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		runServe()
	},
}

var migrateCmd = &cobra.Command{
	Use:       "migrate <up|down>",
	Short:     "Apply or roll back database migrations",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return db.Migrate(provideLogger(cfg), cfg.Postgres, args[0])
	},
}

var tokenTTL time.Duration

var tokenCmd = &cobra.Command{
	Use:   "token <username>",
	Short: "Print an access token for an existing user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := provideLogger(cfg)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := db.Open(ctx, cfg.Postgres)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer pool.Close()

		account, err := accounts.NewService(log, dbsqlc.New(pool)).GetByUsername(ctx, args[0])
		if err != nil {
			return err
		}
		ttl := tokenTTL
		if ttl <= 0 {
			ttl = cfg.Auth.AccessTTL()
		}
		token, expiresAt, err := auth.GenerateToken(account.ID, cfg.Auth.JWTSecret, ttl)
		if err != nil {
			return err
		}
		log.Debug("token issued", slog.String("user_id", account.ID), slog.Time("expires_at", expiresAt))
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.GetInfo())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $CONFIG_PATH or "+config.DefaultConfigPath+")")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (default auth.jwt_expires_in)")
	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd, versionCmd)
}

func main() {
	_ = godotenv.Load() // .env is optional
	if err := rootCmd.Execute(); err != nil {
		logger.L.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
