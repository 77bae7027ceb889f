// Package web parses web command configuration and launches the web service.
package web

import (
	"context"
	"flag"
	"fmt"
	"os"

	entrypoint "github.com/louisbranch/quillroom/internal/platform/cmd"
	"github.com/louisbranch/quillroom/internal/platform/logging"
	"github.com/louisbranch/quillroom/internal/services/web"
	"github.com/louisbranch/quillroom/internal/services/web/storage/sqlite"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr            string `env:"WEB_HTTP_ADDR" envDefault:"localhost:8086"`
	DBPath              string `env:"WEB_DB_PATH" envDefault:"data/quillroom.db"`
	LogLevel            string `env:"LOG_LEVEL" envDefault:"info"`
	TrustForwardedProto bool   `env:"WEB_TRUST_FORWARDED_PROTO" envDefault:"false"`
	UserHeader          string `env:"WEB_USER_HEADER" envDefault:"X-Forwarded-User"`
	DevUserID           string `env:"WEB_DEV_USER_ID"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Trust X-Forwarded-Proto for request scheme")
	fs.StringVar(&cfg.UserHeader, "user-header", cfg.UserHeader, "Trusted proxy header carrying the user id")
	fs.StringVar(&cfg.DevUserID, "dev-user", cfg.DevUserID, "User id to use when no user header is present")
}

// Run opens storage and serves the web surface until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	logger := logging.New(os.Stderr, entrypoint.ServiceWeb, cfg.LogLevel)
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceWeb, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open web store: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Error().Err(err).Msg("close web store")
			}
		}()

		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr:            cfg.HTTPAddr,
			Store:               store,
			Logger:              logger,
			TrustForwardedProto: cfg.TrustForwardedProto,
			UserHeader:          cfg.UserHeader,
			DevUserID:           cfg.DevUserID,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
