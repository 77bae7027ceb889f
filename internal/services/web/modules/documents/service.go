package documents

import (
	"context"
	"strings"

	apperrors "github.com/louisbranch/quillroom/internal/services/web/platform/errors"
)

// Document is the document state shown by the documents pages.
type Document struct {
	ID               string
	Title            string
	Text             string
	Template         bool
	TemplateSourceID string
}

// DocumentGateway loads documents and copies them into templates.
type DocumentGateway interface {
	ListDocuments(context.Context) ([]Document, error)
	GetDocument(context.Context, string) (Document, error)
	// TemplatizeDocument returns the newly created template.
	TemplatizeDocument(context.Context, string) (Document, error)
}

type service struct {
	gateway DocumentGateway
}

func newService(gateway DocumentGateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway}
}

func (s service) listDocuments(ctx context.Context) ([]Document, error) {
	documents, err := s.gateway.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	if documents == nil {
		return []Document{}, nil
	}
	return documents, nil
}

func (s service) getDocument(ctx context.Context, documentID string) (Document, error) {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return Document{}, errDocumentNotFound()
	}
	return s.gateway.GetDocument(ctx, documentID)
}

func (s service) templatizeDocument(ctx context.Context, documentID string) (Document, error) {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return Document{}, errDocumentNotFound()
	}
	template, err := s.gateway.TemplatizeDocument(ctx, documentID)
	if err != nil {
		return Document{}, err
	}
	if strings.TrimSpace(template.ID) == "" {
		return Document{}, apperrors.E(apperrors.KindUnknown, "templatize returned a template without id")
	}
	return template, nil
}

func errDocumentNotFound() error {
	return apperrors.EK(apperrors.KindNotFound, "error.web.document_not_found", "Document not found")
}
