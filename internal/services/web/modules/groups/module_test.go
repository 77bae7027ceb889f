package groups

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	module "github.com/louisbranch/quillroom/internal/services/web/module"
	"github.com/louisbranch/quillroom/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/quillroom/internal/services/web/platform/mutationform"
)

func testBase() modulehandler.Base {
	return modulehandler.NewBase(
		func(*http.Request) string { return "user-1" },
		func(*http.Request) string { return "en-US" },
		func(*http.Request) module.Viewer { return module.Viewer{DisplayName: "Ada"} },
	)
}

func mountGroups(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	m := New(append([]Option{WithBase(testBase())}, opts...)...)
	mount, err := m.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != "/app/groups/" {
		t.Fatalf("prefix = %q, want /app/groups/", mount.Prefix)
	}
	return mount.Handler
}

func postRename(name string) *http.Request {
	form := url.Values{"name": {name}}
	req := httptest.NewRequest(http.MethodPost, "/app/groups/g-eng/edit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestModuleIDAndHealth(t *testing.T) {
	t.Parallel()

	if got := New().ID(); got != "groups" {
		t.Fatalf("ID() = %q, want groups", got)
	}
	if New().Healthy() {
		t.Fatal("module without gateway reported healthy")
	}
	if New(WithGateway(NewStoreGateway(nil))).Healthy() {
		t.Fatal("module with nil store reported healthy")
	}
	if !New(WithGateway(newPopulatedFakeGateway())).Healthy() {
		t.Fatal("module with gateway reported unhealthy")
	}
}

func TestGroupsIndexListsGroups(t *testing.T) {
	t.Parallel()

	h := mountGroups(t, WithGateway(newPopulatedFakeGateway()))
	for _, path := range []string{"/app/groups", "/app/groups/"} {
		rr := serve(h, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d, want 200", path, rr.Code)
		}
		body := rr.Body.String()
		for _, want := range []string{"Engineering", "Design", `href="/app/groups/g-eng"`, "Signed in as"} {
			if !strings.Contains(body, want) {
				t.Fatalf("GET %s body missing %q", path, want)
			}
		}
	}
}

func TestGroupDetailRendersGroup(t *testing.T) {
	t.Parallel()

	h := mountGroups(t, WithGateway(newPopulatedFakeGateway()))
	rr := serve(h, httptest.NewRequest(http.MethodGet, "/app/groups/g-eng", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if body := rr.Body.String(); !strings.Contains(body, "Engineering") || !strings.Contains(body, `href="/app/groups/g-eng/edit"`) {
		t.Fatalf("detail body missing group content: %q", body)
	}
}

func TestGroupDetailMissingGroupIsNotFound(t *testing.T) {
	t.Parallel()

	h := mountGroups(t, WithGateway(newPopulatedFakeGateway()))
	rr := serve(h, httptest.NewRequest(http.MethodGet, "/app/groups/missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `id="app-error"`) {
		t.Fatalf("expected app error state in body")
	}
}

func TestGroupEditFormPrefillsCurrentName(t *testing.T) {
	t.Parallel()

	h := mountGroups(t, WithGateway(newPopulatedFakeGateway()))
	rr := serve(h, httptest.NewRequest(http.MethodGet, "/app/groups/g-eng/edit", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{`name="name"`, `value="Engineering"`, ">Save</button>", `data-loading-label="Saving…"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("edit body missing %q", want)
		}
	}
	if strings.Contains(body, `" disabled>`) {
		t.Fatalf("submit button should be enabled for a non-empty name")
	}
}

func TestGroupEditFormDisabledWhileRenameInFlight(t *testing.T) {
	t.Parallel()

	guard := mutationform.NewGuard()
	release, ok := guard.TryAcquire("groups.rename:user-1:g-eng")
	if !ok {
		t.Fatal("TryAcquire() = false")
	}
	defer release()

	h := mountGroups(t, WithGateway(newPopulatedFakeGateway()), WithGuard(guard))
	rr := serve(h, httptest.NewRequest(http.MethodGet, "/app/groups/g-eng/edit", nil))
	if !strings.Contains(rr.Body.String(), `" disabled>`) {
		t.Fatalf("submit button should be disabled while a rename is in flight")
	}
}

func TestGroupEditFormIgnoresOtherUsersRename(t *testing.T) {
	t.Parallel()

	guard := mutationform.NewGuard()
	release, _ := guard.TryAcquire("groups.rename:user-2:g-eng")
	defer release()

	h := mountGroups(t, WithGateway(newPopulatedFakeGateway()), WithGuard(guard))
	rr := serve(h, httptest.NewRequest(http.MethodGet, "/app/groups/g-eng/edit", nil))
	if strings.Contains(rr.Body.String(), `" disabled>`) {
		t.Fatalf("another user's rename must not disable this form")
	}
}

func TestGroupRenameRedirectsToGroup(t *testing.T) {
	t.Parallel()

	gateway := newPopulatedFakeGateway()
	h := mountGroups(t, WithGateway(gateway))
	rr := serve(h, postRename("Eng"))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rr.Code)
	}
	if got := rr.Header().Get("Location"); got != "/app/groups/g-eng" {
		t.Fatalf("Location = %q, want /app/groups/g-eng", got)
	}
	if diff := cmp.Diff([]renameCall{{groupID: "g-eng", name: "Eng"}}, gateway.renameCalls, cmp.AllowUnexported(renameCall{})); diff != "" {
		t.Fatalf("rename calls mismatch (-want +got):\n%s", diff)
	}
	if got := gateway.groups["g-eng"].Name; got != "Eng" {
		t.Fatalf("stored name = %q, want Eng", got)
	}
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == "qr_flash" && cookie.Value != "" {
			t.Fatalf("rename should not write a success notice, got %q", cookie.Value)
		}
	}
}

func TestGroupRenameHTMXUsesHXRedirect(t *testing.T) {
	t.Parallel()

	h := mountGroups(t, WithGateway(newPopulatedFakeGateway()))
	req := postRename("Eng")
	req.Header.Set("HX-Request", "true")
	rr := serve(h, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got := rr.Header().Get("HX-Redirect"); got != "/app/groups/g-eng" {
		t.Fatalf("HX-Redirect = %q, want /app/groups/g-eng", got)
	}
}

func TestGroupRenameEmptyNameIsRejectedBeforeMutation(t *testing.T) {
	t.Parallel()

	gateway := newPopulatedFakeGateway()
	h := mountGroups(t, WithGateway(gateway))
	rr := serve(h, postRename(""))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if len(gateway.renameCalls) != 0 {
		t.Fatalf("rename called for empty name: %+v", gateway.renameCalls)
	}
	if body := rr.Body.String(); !strings.Contains(body, "Name is required") || !strings.Contains(body, `" disabled>`) {
		t.Fatalf("expected required toast and disabled button, got %q", body)
	}
}

func TestGroupRenameTakenNameShowsErrorAndKeepsInput(t *testing.T) {
	t.Parallel()

	gateway := newPopulatedFakeGateway()
	h := mountGroups(t, WithGateway(gateway))
	rr := serve(h, postRename("Design"))

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"The name of this group is already in use", `class="toast toast-error"`, `value="Design"`, ">Save</button>"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
	if rr.Header().Get("Location") != "" {
		t.Fatalf("failed rename must not redirect")
	}
	if got := gateway.groups["g-eng"].Name; got != "Engineering" {
		t.Fatalf("stored name = %q, want Engineering", got)
	}
}

func TestGroupRenameGatewayFailureShowsMessageVerbatim(t *testing.T) {
	t.Parallel()

	gateway := newPopulatedFakeGateway()
	gateway.renameErr = errors.New("Network error")
	h := mountGroups(t, WithGateway(gateway))
	req := postRename("Eng")
	req.Header.Set("HX-Request", "true")
	rr := serve(h, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Network error") {
		t.Fatalf("body missing verbatim error: %q", body)
	}
	if !strings.Contains(body, `hx-swap-oob="true"`) {
		t.Fatalf("HTMX failure should swap the toast out of band: %q", body)
	}
	if strings.Count(body, `class="toast toast-error"`) != 1 {
		t.Fatalf("expected exactly one error toast: %q", body)
	}
	if rr.Header().Get("HX-Redirect") != "" {
		t.Fatalf("failed rename must not redirect")
	}
}

func TestGroupRenameInFlightIsConflict(t *testing.T) {
	t.Parallel()

	gateway := newPopulatedFakeGateway()
	guard := mutationform.NewGuard()
	release, _ := guard.TryAcquire("groups.rename:user-1:g-eng")
	defer release()

	h := mountGroups(t, WithGateway(gateway), WithGuard(guard))
	rr := serve(h, postRename("Eng"))

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rr.Code)
	}
	if len(gateway.renameCalls) != 0 {
		t.Fatalf("rename called while in flight: %+v", gateway.renameCalls)
	}
	if !strings.Contains(rr.Body.String(), "already being submitted") {
		t.Fatalf("body missing in-flight toast")
	}
}

func TestGroupRenameReleasesGuardAfterSubmission(t *testing.T) {
	t.Parallel()

	gateway := newPopulatedFakeGateway()
	guard := mutationform.NewGuard()
	h := mountGroups(t, WithGateway(gateway), WithGuard(guard))

	if rr := serve(h, postRename("Eng")); rr.Code != http.StatusSeeOther {
		t.Fatalf("first status = %d, want 303", rr.Code)
	}
	if guard.Active("groups.rename:user-1:g-eng") {
		t.Fatal("guard still held after submission")
	}
	if rr := serve(h, postRename("Engineering")); rr.Code != http.StatusSeeOther {
		t.Fatalf("second status = %d, want 303", rr.Code)
	}
	if len(gateway.renameCalls) != 2 {
		t.Fatalf("rename calls = %d, want 2", len(gateway.renameCalls))
	}
}

func TestGroupsUnavailableGatewayIsServiceUnavailable(t *testing.T) {
	t.Parallel()

	h := mountGroups(t)
	rr := serve(h, httptest.NewRequest(http.MethodGet, "/app/groups", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
}

func TestGroupsUnknownSubroutesAreNotFound(t *testing.T) {
	t.Parallel()

	h := mountGroups(t, WithGateway(newPopulatedFakeGateway()))
	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/app/groups/g-eng/members", nil),
		httptest.NewRequest(http.MethodPost, "/app/groups/g-eng/archive", nil),
	} {
		rr := serve(h, req)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("%s %s status = %d, want 404", req.Method, req.URL.Path, rr.Code)
		}
	}
}

type slowGateway struct {
	*fakeGateway
}

func (g slowGateway) RenameGroup(ctx context.Context, _ string, _ string) (Group, error) {
	<-ctx.Done()
	return Group{}, ctx.Err()
}

func TestGroupRenameTimeoutReturnsForm(t *testing.T) {
	t.Parallel()

	gateway := slowGateway{fakeGateway: newPopulatedFakeGateway()}
	h := newHandlers(newService(gateway), testBase(), mutationform.NewGuard(), New().logger)
	h.timeout = 10 * time.Millisecond
	mux := http.NewServeMux()
	registerRoutes(mux, h)

	rr := serve(mux, postRename("Eng"))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, context.DeadlineExceeded.Error()) {
		t.Fatalf("body missing deadline message: %q", body)
	}
}
