package modules

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/quillroom/internal/services/web/platform/mutationform"
	webstorage "github.com/louisbranch/quillroom/internal/services/web/storage"
	"github.com/louisbranch/quillroom/internal/services/web/storage/sqlite"
)

func TestDefaultAppModulesOrderAndIDs(t *testing.T) {
	t.Parallel()

	mods := DefaultAppModules(Dependencies{}, ModuleResolvers{})
	var ids []string
	for _, mod := range mods {
		ids = append(ids, mod.ID())
	}
	if diff := cmp.Diff([]string{"groups", "documents"}, ids); diff != "" {
		t.Fatalf("module ids mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultAppModulesHaveUniquePrefixes(t *testing.T) {
	t.Parallel()

	seen := map[string]struct{}{}
	for _, mod := range DefaultAppModules(Dependencies{}, ModuleResolvers{}) {
		mount, err := mod.Mount()
		if err != nil {
			t.Fatalf("module %q mount error = %v", mod.ID(), err)
		}
		if mount.Prefix == "" || mount.Handler == nil {
			t.Fatalf("module %q mount incomplete: %+v", mod.ID(), mount)
		}
		if _, ok := seen[mount.Prefix]; ok {
			t.Fatalf("duplicate mount prefix %q", mount.Prefix)
		}
		seen[mount.Prefix] = struct{}{}
	}
}

func TestHealthyReflectsStoreWiring(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff(map[string]bool{"groups": false, "documents": false}, Healthy(DefaultAppModules(Dependencies{}, ModuleResolvers{}))); diff != "" {
		t.Fatalf("health without stores mismatch (-want +got):\n%s", diff)
	}

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "registry.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	mods := DefaultAppModules(Dependencies{Groups: store, Documents: store}, ModuleResolvers{})
	if diff := cmp.Diff(map[string]bool{"groups": true, "documents": true}, Healthy(mods)); diff != "" {
		t.Fatalf("health with stores mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultAppModulesShareGuard(t *testing.T) {
	t.Parallel()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "guard.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.PutGroup(context.Background(), webstorage.Group{ID: "g-1", Name: "Engineering"}); err != nil {
		t.Fatalf("put group: %v", err)
	}

	guard := mutationform.NewGuard()
	release, _ := guard.TryAcquire("groups.rename:user-1:g-1")
	defer release()

	mods := DefaultAppModules(
		Dependencies{Groups: store, Documents: store, Guard: guard},
		ModuleResolvers{ResolveUserID: func(*http.Request) string { return "user-1" }},
	)
	mount, err := mods[0].Mount()
	if err != nil {
		t.Fatalf("mount groups: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/app/groups/g-1/edit", strings.NewReader("name=Eng"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rr.Code)
	}
}
