// Package seed loads TOML fixtures into the quillroom store.
package seed

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	webstorage "github.com/louisbranch/quillroom/internal/services/web/storage"
	"github.com/rs/zerolog"
)

// Config holds seed runner configuration.
type Config struct {
	FixturesDir string
	// Scenario selects one fixture file by base name. Empty loads all.
	Scenario string
}

// DefaultConfig returns configuration with common defaults.
func DefaultConfig() Config {
	return Config{FixturesDir: "internal/seed/fixtures"}
}

// Store is the persistence used by the seeder.
type Store interface {
	PutGroup(ctx context.Context, group webstorage.Group) error
	PutDocument(ctx context.Context, document webstorage.Document) error
}

// Summary counts what a run applied.
type Summary struct {
	Fixtures  int
	Groups    int
	Documents int
}

// Run loads the configured fixtures and upserts them into store.
func Run(ctx context.Context, store Store, cfg Config, logger zerolog.Logger) (Summary, error) {
	if store == nil {
		return Summary{}, fmt.Errorf("seed store is required")
	}
	dir := strings.TrimSpace(cfg.FixturesDir)
	if dir == "" {
		dir = DefaultConfig().FixturesDir
	}
	pattern := filepath.Join(dir, "*.toml")
	if scenario := strings.TrimSpace(cfg.Scenario); scenario != "" {
		pattern = filepath.Join(dir, scenario+".toml")
	}

	fixtures, err := LoadFixtures(pattern)
	if err != nil {
		return Summary{}, fmt.Errorf("load fixtures: %w", err)
	}
	logger.Debug().Int("count", len(fixtures)).Str("pattern", pattern).Msg("loaded fixtures")

	var summary Summary
	for _, fixture := range fixtures {
		applied, err := Apply(ctx, store, fixture)
		if err != nil {
			return summary, fmt.Errorf("fixture %q: %w", fixture.Name, err)
		}
		summary.Fixtures++
		summary.Groups += applied.Groups
		summary.Documents += applied.Documents
		logger.Info().Str("fixture", fixture.Name).Int("groups", applied.Groups).Int("documents", applied.Documents).Msg("fixture applied")
	}
	return summary, nil
}

// Apply upserts one fixture. Re-applying a fixture is idempotent.
func Apply(ctx context.Context, store Store, fixture Fixture) (Summary, error) {
	var summary Summary
	for _, group := range fixture.Groups {
		err := store.PutGroup(ctx, webstorage.Group{
			ID:          strings.TrimSpace(group.ID),
			Name:        group.Name,
			MemberCount: group.MemberCount,
		})
		if err != nil {
			return summary, fmt.Errorf("put group %q: %w", group.ID, err)
		}
		summary.Groups++
	}
	for _, document := range fixture.Documents {
		err := store.PutDocument(ctx, webstorage.Document{
			ID:           strings.TrimSpace(document.ID),
			Title:        document.Title,
			Text:         document.Text,
			CollectionID: document.CollectionID,
			Template:     document.Template,
		})
		if err != nil {
			return summary, fmt.Errorf("put document %q: %w", document.ID, err)
		}
		summary.Documents++
	}
	summary.Fixtures = 1
	return summary, nil
}
