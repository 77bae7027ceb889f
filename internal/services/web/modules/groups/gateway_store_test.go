package groups

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	apperrors "github.com/louisbranch/quillroom/internal/services/web/platform/errors"
	webstorage "github.com/louisbranch/quillroom/internal/services/web/storage"
	"github.com/louisbranch/quillroom/internal/services/web/storage/sqlite"
)

func openGatewayStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "groups.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()
	for _, group := range []webstorage.Group{
		{ID: "g-eng", Name: "Engineering", MemberCount: 4},
		{ID: "g-design", Name: "Design", MemberCount: 2},
	} {
		if err := store.PutGroup(ctx, group); err != nil {
			t.Fatalf("put group: %v", err)
		}
	}
	return store
}

func TestStoreGatewayRenamesGroup(t *testing.T) {
	t.Parallel()

	gateway := NewStoreGateway(openGatewayStore(t))
	ctx := context.Background()

	renamed, err := gateway.RenameGroup(ctx, "g-eng", "Eng")
	if err != nil {
		t.Fatalf("RenameGroup() error = %v", err)
	}
	want := Group{ID: "g-eng", Name: "Eng", MemberCount: 4}
	if diff := cmp.Diff(want, renamed); diff != "" {
		t.Fatalf("renamed group mismatch (-want +got):\n%s", diff)
	}
	loaded, err := gateway.GetGroup(ctx, "g-eng")
	if err != nil {
		t.Fatalf("GetGroup() error = %v", err)
	}
	if diff := cmp.Diff(want, loaded); diff != "" {
		t.Fatalf("loaded group mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreGatewayListsGroups(t *testing.T) {
	t.Parallel()

	groups, err := NewStoreGateway(openGatewayStore(t)).ListGroups(context.Background())
	if err != nil {
		t.Fatalf("ListGroups() error = %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
}

func TestStoreGatewayMapsStoreErrors(t *testing.T) {
	t.Parallel()

	gateway := NewStoreGateway(openGatewayStore(t))
	ctx := context.Background()

	_, err := gateway.GetGroup(ctx, "missing")
	if got := apperrors.HTTPStatus(err); got != http.StatusNotFound {
		t.Fatalf("missing group status = %d, want 404", got)
	}

	_, err = gateway.RenameGroup(ctx, "g-eng", "Design")
	if got := apperrors.HTTPStatus(err); got != http.StatusConflict {
		t.Fatalf("taken name status = %d, want 409", got)
	}
	if err.Error() != "The name of this group is already in use" {
		t.Fatalf("taken name message = %q", err.Error())
	}
}

func TestMapStoreErrorFallsBackToUnavailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err     error
		wantKey string
	}{
		{err: context.DeadlineExceeded, wantKey: "error.web.mutation_timeout"},
		{err: webstorage.ErrAlreadyTemplate, wantKey: "error.web.storage_unavailable"},
	}
	for _, tc := range tests {
		got := mapStoreError(tc.err)
		if key := apperrors.LocalizationKey(got); key != tc.wantKey {
			t.Fatalf("mapStoreError(%v) key = %q, want %q", tc.err, key, tc.wantKey)
		}
		if status := apperrors.HTTPStatus(got); status != http.StatusServiceUnavailable {
			t.Fatalf("mapStoreError(%v) status = %d, want 503", tc.err, status)
		}
	}
}
