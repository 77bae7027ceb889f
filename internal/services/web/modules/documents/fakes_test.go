package documents

import (
	"context"
	"sort"

	apperrors "github.com/louisbranch/quillroom/internal/services/web/platform/errors"
)

// fakeGateway implements DocumentGateway for tests with canned documents,
// error injection, and call recording.
type fakeGateway struct {
	documents     map[string]Document
	listErr       error
	templatizeErr error
	nextID        string

	templatizeCalls []string
}

func newPopulatedFakeGateway() *fakeGateway {
	return &fakeGateway{
		nextID: "tpl-1",
		documents: map[string]Document{
			"doc-1": {ID: "doc-1", Title: "Onboarding checklist", Text: "Step one"},
			"tpl-0": {ID: "tpl-0", Title: "Weekly sync", Text: "Agenda", Template: true, TemplateSourceID: "doc-0"},
		},
	}
}

func (f *fakeGateway) ListDocuments(context.Context) ([]Document, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]Document, 0, len(f.documents))
	for _, document := range f.documents {
		out = append(out, document)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeGateway) GetDocument(_ context.Context, documentID string) (Document, error) {
	document, ok := f.documents[documentID]
	if !ok {
		return Document{}, errDocumentNotFound()
	}
	return document, nil
}

func (f *fakeGateway) TemplatizeDocument(_ context.Context, documentID string) (Document, error) {
	f.templatizeCalls = append(f.templatizeCalls, documentID)
	if f.templatizeErr != nil {
		return Document{}, f.templatizeErr
	}
	source, ok := f.documents[documentID]
	if !ok {
		return Document{}, errDocumentNotFound()
	}
	if source.Template {
		return Document{}, apperrors.EK(apperrors.KindInvalidInput, "error.web.document_already_template", "This document is already a template")
	}
	template := source
	template.ID = f.nextID
	template.Template = true
	template.TemplateSourceID = source.ID
	f.documents[template.ID] = template
	return template, nil
}
