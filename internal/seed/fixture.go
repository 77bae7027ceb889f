package seed

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Fixture describes one named set of groups and documents to load.
type Fixture struct {
	Name      string            `toml:"name"`
	Groups    []GroupFixture    `toml:"groups"`
	Documents []DocumentFixture `toml:"documents"`
}

// GroupFixture is one seeded group.
type GroupFixture struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	MemberCount int    `toml:"member_count"`
}

// DocumentFixture is one seeded document or template.
type DocumentFixture struct {
	ID           string `toml:"id"`
	Title        string `toml:"title"`
	Text         string `toml:"text"`
	CollectionID string `toml:"collection_id"`
	Template     bool   `toml:"template"`
}

// LoadFixtures decodes every TOML file matching pattern, sorted by path.
// A fixture without a name takes its file name.
func LoadFixtures(pattern string) ([]Fixture, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob fixtures: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no fixtures match %q", pattern)
	}
	sort.Strings(paths)

	fixtures := make([]Fixture, 0, len(paths))
	for _, path := range paths {
		fixture, err := LoadFixture(path)
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, fixture)
	}
	return fixtures, nil
}

// LoadFixture decodes one TOML fixture file and rejects unknown keys.
func LoadFixture(path string) (Fixture, error) {
	var fixture Fixture
	meta, err := toml.DecodeFile(path, &fixture)
	if err != nil {
		return Fixture{}, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return Fixture{}, fmt.Errorf("decode fixture %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if strings.TrimSpace(fixture.Name) == "" {
		fixture.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := fixture.validate(); err != nil {
		return Fixture{}, fmt.Errorf("fixture %s: %w", path, err)
	}
	return fixture, nil
}

func (f Fixture) validate() error {
	groupIDs := map[string]struct{}{}
	for i, group := range f.Groups {
		id := strings.TrimSpace(group.ID)
		if id == "" {
			return fmt.Errorf("groups[%d]: id is required", i)
		}
		if strings.TrimSpace(group.Name) == "" {
			return fmt.Errorf("group %q: name is required", id)
		}
		if _, dup := groupIDs[id]; dup {
			return fmt.Errorf("group %q: duplicate id", id)
		}
		groupIDs[id] = struct{}{}
	}
	documentIDs := map[string]struct{}{}
	for i, document := range f.Documents {
		id := strings.TrimSpace(document.ID)
		if id == "" {
			return fmt.Errorf("documents[%d]: id is required", i)
		}
		if _, dup := documentIDs[id]; dup {
			return fmt.Errorf("document %q: duplicate id", id)
		}
		documentIDs[id] = struct{}{}
	}
	return nil
}
