package documents

import (
	"context"

	apperrors "github.com/louisbranch/quillroom/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func (unavailableGateway) ListDocuments(context.Context) ([]Document, error) {
	return nil, errUnavailable()
}

func (unavailableGateway) GetDocument(context.Context, string) (Document, error) {
	return Document{}, errUnavailable()
}

func (unavailableGateway) TemplatizeDocument(context.Context, string) (Document, error) {
	return Document{}, errUnavailable()
}

func errUnavailable() error {
	return apperrors.EK(apperrors.KindUnavailable, "error.web.storage_unavailable", "documents storage is not configured")
}
