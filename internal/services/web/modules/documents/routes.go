package documents

import (
	"net/http"

	"github.com/louisbranch/quillroom/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppDocuments, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.DocumentsPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppDocumentPattern, h.handleDetailRoute)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppDocumentTemplatize, h.handleTemplatizeGet)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppDocumentTemplatize, h.handleTemplatizePost)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppDocumentRestPattern, h.WriteNotFound)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppDocumentRestPattern, h.WriteNotFound)
}
