package groups

import (
	"net/http"

	"github.com/louisbranch/quillroom/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppGroups, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.GroupsPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppGroupPattern, h.handleDetailRoute)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppGroupEditPattern, h.handleEditGet)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppGroupEditPattern, h.handleEditPost)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppGroupRestPattern, h.WriteNotFound)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppGroupRestPattern, h.WriteNotFound)
}
