// Package modulehandler provides a composable base for app web module handlers.
//
// Modules mounted under /app/ share handler infrastructure for user
// resolution, localization, page rendering, and error handling. Modules embed
// Base rather than duplicating it.
package modulehandler

import (
	"context"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	module "github.com/louisbranch/quillroom/internal/services/web/module"
	webi18n "github.com/louisbranch/quillroom/internal/services/web/platform/i18n"
	"github.com/louisbranch/quillroom/internal/services/web/platform/pagerender"
	"github.com/louisbranch/quillroom/internal/services/web/platform/webctx"
	"github.com/louisbranch/quillroom/internal/services/web/platform/weberror"
	webtemplates "github.com/louisbranch/quillroom/internal/services/web/templates"
)

// Base carries the shared request-scoped resolvers used by module handlers.
type Base struct {
	resolveUserID   module.ResolveUserID
	resolveLanguage module.ResolveLanguage
	resolveViewer   module.ResolveViewer
}

// NewBase builds a handler base from explicit resolver functions.
func NewBase(resolveUserID module.ResolveUserID, resolveLanguage module.ResolveLanguage, resolveViewer module.ResolveViewer) Base {
	return Base{
		resolveUserID:   resolveUserID,
		resolveLanguage: resolveLanguage,
		resolveViewer:   resolveViewer,
	}
}

// ResolveRequestViewer resolves app chrome viewer state for a request.
func (b Base) ResolveRequestViewer(r *http.Request) module.Viewer {
	if b.resolveViewer == nil {
		return module.Viewer{}
	}
	return b.resolveViewer(r)
}

// ResolveRequestLanguage returns the effective request language.
func (b Base) ResolveRequestLanguage(r *http.Request) string {
	if b.resolveLanguage == nil {
		return ""
	}
	return b.resolveLanguage(r)
}

// PageLocalizer resolves a localizer and language tag from the request.
func (b Base) PageLocalizer(w http.ResponseWriter, r *http.Request) (webtemplates.Localizer, string) {
	return webi18n.ResolveLocalizer(w, r, b.resolveLanguage)
}

// WriteError renders a localized module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err, b)
}

// WriteNotFound renders a 404 error page within the app shell.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, b)
}

// RequestUserID extracts the acting user ID from the request.
func (b Base) RequestUserID(r *http.Request) string {
	if r == nil || b.resolveUserID == nil {
		return ""
	}
	return strings.TrimSpace(b.resolveUserID(r))
}

// RequestContextAndUserID returns a context carrying the user ID and the raw
// user ID string.
func (b Base) RequestContextAndUserID(r *http.Request) (context.Context, string) {
	ctx := webctx.WithResolvedUserID(r, b.resolveUserID)
	return ctx, b.RequestUserID(r)
}

// WritePage renders a full module page (HTMX-aware) with the given title, header,
// layout, and content fragment.
func (b Base) WritePage(
	w http.ResponseWriter,
	r *http.Request,
	title string,
	statusCode int,
	header *webtemplates.AppMainHeader,
	layout webtemplates.AppMainLayoutOptions,
	fragment templ.Component,
) {
	b.WriteModulePage(w, r, pagerender.ModulePage{
		Title:      title,
		StatusCode: statusCode,
		Header:     header,
		Layout:     layout,
		Fragment:   fragment,
	})
}

// WriteModulePage renders a fully described module page.
func (b Base) WriteModulePage(w http.ResponseWriter, r *http.Request, page pagerender.ModulePage) {
	if err := pagerender.WriteModulePage(w, r, b, page); err != nil {
		b.WriteError(w, r, err)
	}
}
