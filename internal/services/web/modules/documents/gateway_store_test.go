package documents

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/quillroom/internal/platform/id"
	apperrors "github.com/louisbranch/quillroom/internal/services/web/platform/errors"
	webstorage "github.com/louisbranch/quillroom/internal/services/web/storage"
	"github.com/louisbranch/quillroom/internal/services/web/storage/sqlite"
)

func openGatewayStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "documents.db"), sqlite.WithIDGenerator(id.Sequence("tpl")))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()
	for _, document := range []webstorage.Document{
		{ID: "doc-1", Title: "Onboarding checklist", Text: "Step one", CollectionID: "col-1"},
		{ID: "doc-2", Title: "  ", Text: "No title"},
	} {
		if err := store.PutDocument(ctx, document); err != nil {
			t.Fatalf("put document: %v", err)
		}
	}
	return store
}

func TestStoreGatewayTemplatizesDocument(t *testing.T) {
	t.Parallel()

	gateway := NewStoreGateway(openGatewayStore(t))
	ctx := context.Background()

	template, err := gateway.TemplatizeDocument(ctx, "doc-1")
	if err != nil {
		t.Fatalf("TemplatizeDocument() error = %v", err)
	}
	if !template.Template || template.TemplateSourceID != "doc-1" || template.ID == "doc-1" {
		t.Fatalf("unexpected template: %+v", template)
	}
	loaded, err := gateway.GetDocument(ctx, template.ID)
	if err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}
	if diff := cmp.Diff(template, loaded); diff != "" {
		t.Fatalf("loaded template mismatch (-want +got):\n%s", diff)
	}

	_, err = gateway.TemplatizeDocument(ctx, template.ID)
	if apperrors.LocalizationKey(err) != "error.web.document_already_template" {
		t.Fatalf("second templatize key = %q", apperrors.LocalizationKey(err))
	}
	if apperrors.HTTPStatus(err) != http.StatusBadRequest {
		t.Fatalf("second templatize status = %d, want 400", apperrors.HTTPStatus(err))
	}
}

func TestStoreGatewayDefaultsBlankTitle(t *testing.T) {
	t.Parallel()

	document, err := NewStoreGateway(openGatewayStore(t)).GetDocument(context.Background(), "doc-2")
	if err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}
	if document.Title != webstorage.DefaultDocumentTitle {
		t.Fatalf("Title = %q, want %q", document.Title, webstorage.DefaultDocumentTitle)
	}
}

func TestStoreGatewayMissingDocumentIsNotFound(t *testing.T) {
	t.Parallel()

	_, err := NewStoreGateway(openGatewayStore(t)).TemplatizeDocument(context.Background(), "missing")
	if apperrors.HTTPStatus(err) != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", apperrors.HTTPStatus(err))
	}
}
