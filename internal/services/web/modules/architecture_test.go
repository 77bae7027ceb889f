package modules

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/quillroom/internal/services/web/routepath"
)

func TestFeatureModulesDoNotImportSiblingModules(t *testing.T) {
	t.Parallel()

	entries, err := filepath.Glob(filepath.Join("*", "*.go"))
	if err != nil {
		t.Fatalf("glob module files: %v", err)
	}
	fset := token.NewFileSet()
	for _, file := range entries {
		parsed, err := parser.ParseFile(fset, file, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parse imports for %s: %v", file, err)
		}
		for _, imp := range parsed.Imports {
			path := strings.Trim(imp.Path.Value, "\"")
			if strings.Contains(path, "/internal/services/web/modules/") {
				t.Fatalf("file %s imports sibling module path %q", file, path)
			}
		}
	}
}

func TestFeatureModulesDoNotImportStorageDrivers(t *testing.T) {
	t.Parallel()

	entries, err := filepath.Glob(filepath.Join("*", "*.go"))
	if err != nil {
		t.Fatalf("glob module files: %v", err)
	}
	fset := token.NewFileSet()
	for _, file := range entries {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}
		parsed, err := parser.ParseFile(fset, file, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parse imports for %s: %v", file, err)
		}
		for _, imp := range parsed.Imports {
			path := strings.Trim(imp.Path.Value, "\"")
			if strings.HasSuffix(path, "/storage/sqlite") || strings.HasPrefix(path, "modernc.org/") {
				t.Fatalf("file %s imports storage driver %q; depend on storage interfaces instead", file, path)
			}
		}
	}
}

func TestRoutePrefixesRemainUniqueConstants(t *testing.T) {
	t.Parallel()

	prefixes := []string{
		routepath.GroupsPrefix,
		routepath.DocumentsPrefix,
	}
	seen := map[string]struct{}{}
	for _, prefix := range prefixes {
		if !strings.HasPrefix(prefix, routepath.AppPrefix) {
			t.Fatalf("prefix %q is outside %q", prefix, routepath.AppPrefix)
		}
		if _, ok := seen[prefix]; ok {
			t.Fatalf("duplicate route prefix constant %q", prefix)
		}
		seen[prefix] = struct{}{}
	}
}

func TestFeatureModulesFollowTemplate(t *testing.T) {
	t.Parallel()

	areas := []string{"groups", "documents"}
	requiredFiles := []string{"module.go", "routes.go", "handlers.go", "service.go", "module_test.go", "service_test.go"}
	for _, area := range areas {
		for _, file := range requiredFiles {
			path := filepath.Join(area, file)
			if _, err := os.Stat(path); err != nil {
				t.Fatalf("module %q missing required file %q: %v", area, file, err)
			}
		}
	}
}
