package documents

import (
	"context"
	"errors"

	apperrors "github.com/louisbranch/quillroom/internal/services/web/platform/errors"
	webstorage "github.com/louisbranch/quillroom/internal/services/web/storage"
)

// NewStoreGateway adapts a document store to the documents gateway. A nil
// store yields the unavailable gateway.
func NewStoreGateway(store webstorage.DocumentStore) DocumentGateway {
	if store == nil {
		return unavailableGateway{}
	}
	return storeGateway{store: store}
}

type storeGateway struct {
	store webstorage.DocumentStore
}

func (g storeGateway) ListDocuments(ctx context.Context) ([]Document, error) {
	records, err := g.store.ListDocuments(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}
	documents := make([]Document, 0, len(records))
	for _, record := range records {
		documents = append(documents, documentFromRecord(record))
	}
	return documents, nil
}

func (g storeGateway) GetDocument(ctx context.Context, documentID string) (Document, error) {
	record, err := g.store.GetDocument(ctx, documentID)
	if err != nil {
		return Document{}, mapStoreError(err)
	}
	return documentFromRecord(record), nil
}

func (g storeGateway) TemplatizeDocument(ctx context.Context, documentID string) (Document, error) {
	record, err := g.store.TemplatizeDocument(ctx, documentID)
	if err != nil {
		return Document{}, mapStoreError(err)
	}
	return documentFromRecord(record), nil
}

func documentFromRecord(record webstorage.Document) Document {
	return Document{
		ID:               record.ID,
		Title:            record.TitleWithDefault(),
		Text:             record.Text,
		Template:         record.Template,
		TemplateSourceID: record.TemplateSourceID,
	}
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, webstorage.ErrNotFound):
		return errDocumentNotFound()
	case errors.Is(err, webstorage.ErrAlreadyTemplate):
		return apperrors.EK(apperrors.KindInvalidInput, "error.web.document_already_template", "This document is already a template")
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.EK(apperrors.KindUnavailable, "error.web.mutation_timeout", "The request took too long, please try again")
	default:
		return apperrors.EK(apperrors.KindUnavailable, "error.web.storage_unavailable", "Storage is temporarily unavailable")
	}
}
