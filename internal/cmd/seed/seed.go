// Package seed parses seed command configuration and loads fixtures.
package seed

import (
	"context"
	"flag"
	"fmt"
	"os"

	entrypoint "github.com/louisbranch/quillroom/internal/platform/cmd"
	"github.com/louisbranch/quillroom/internal/platform/logging"
	"github.com/louisbranch/quillroom/internal/seed"
	"github.com/louisbranch/quillroom/internal/services/web/storage/sqlite"
)

// Config holds seed command configuration.
type Config struct {
	DBPath      string `env:"WEB_DB_PATH" envDefault:"data/quillroom.db"`
	FixturesDir string `env:"SEED_FIXTURES_DIR" envDefault:"internal/seed/fixtures"`
	Scenario    string `env:"SEED_SCENARIO"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
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
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.FixturesDir, "fixtures", cfg.FixturesDir, "Directory of TOML fixtures")
	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "Fixture name to load (default all)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

// Run applies the configured fixtures to the store at DBPath.
func Run(ctx context.Context, cfg Config) error {
	logger := logging.NewConsole(os.Stderr, entrypoint.ServiceSeed, cfg.LogLevel)
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceSeed, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open web store: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Error().Err(err).Msg("close web store")
			}
		}()

		summary, err := seed.Run(ctx, store, seed.Config{FixturesDir: cfg.FixturesDir, Scenario: cfg.Scenario}, logger)
		if err != nil {
			return err
		}
		logger.Info().
			Int("fixtures", summary.Fixtures).
			Int("groups", summary.Groups).
			Int("documents", summary.Documents).
			Msg("seeding complete")
		return nil
	})
}
