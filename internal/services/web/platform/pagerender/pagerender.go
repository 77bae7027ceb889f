// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	module "github.com/louisbranch/quillroom/internal/services/web/module"
	flashnotice "github.com/louisbranch/quillroom/internal/services/web/platform/flash"
	"github.com/louisbranch/quillroom/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/quillroom/internal/services/web/platform/i18n"
	webtemplates "github.com/louisbranch/quillroom/internal/services/web/templates"
)

// RequestResolver resolves viewer and language state from a request.
// This decouples platform rendering from module handler types.
type RequestResolver interface {
	ResolveRequestViewer(r *http.Request) module.Viewer
	ResolveRequestLanguage(r *http.Request) string
}

// ModulePage describes a module page response for both full-page and HTMX flows.
type ModulePage struct {
	Title      string
	StatusCode int
	Header     *webtemplates.AppMainHeader
	Layout     webtemplates.AppMainLayoutOptions
	Fragment   templ.Component
	// Toast, when set, is shown instead of any pending flash notice. Forms
	// re-rendered after a failed submission use it for the error.
	Toast *webtemplates.AppToast
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WriteModulePage writes a module page using shared app-shell rendering contracts.
func WriteModulePage(w http.ResponseWriter, r *http.Request, resolver RequestResolver, page ModulePage) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}

	var resolveLanguage module.ResolveLanguage
	if resolver != nil {
		resolveLanguage = resolver.ResolveRequestLanguage
	}
	loc, lang := webi18n.ResolveLocalizer(w, r, resolveLanguage)
	ctx := templ.WithChildren(httpx.RequestContext(r), fragment)

	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		main := webtemplates.AppMainContentWithLayout(page.Header, page.Layout)
		if err := main.Render(ctx, &buf); err != nil {
			return err
		}
		// Swaps leave the flash cookie for the next full page load.
		if page.Toast != nil {
			if err := webtemplates.AppToastRegion(page.Toast, true).Render(ctx, &buf); err != nil {
				return err
			}
		}
		writeHTML(w, statusCode, buf.Bytes())
		return nil
	}

	toast := page.Toast
	if toast == nil {
		toast = resolveFlashToast(w, r, loc)
	}

	viewer := module.Viewer{}
	if resolver != nil {
		viewer = resolver.ResolveRequestViewer(r)
	}
	layout := webtemplates.AppLayoutWithMainHeaderAndLayout(page.Title, viewer, page.Header, page.Layout, toast, lang, loc)
	if err := layout.Render(ctx, &buf); err != nil {
		return err
	}
	writeHTML(w, statusCode, buf.Bytes())
	return nil
}

func writeHTML(w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}

// resolveFlashToast consumes the flash cookie. A localization key wins when
// it translates; otherwise the literal message is shown as-is.
func resolveFlashToast(w http.ResponseWriter, r *http.Request, loc webi18n.Localizer) *webtemplates.AppToast {
	notice, ok := flashnotice.ReadAndClear(w, r)
	if !ok {
		return nil
	}
	message := ""
	if key := strings.TrimSpace(notice.Key); key != "" && loc != nil {
		if localized := strings.TrimSpace(loc.Sprintf(key)); localized != key {
			message = localized
		}
	}
	if message == "" {
		message = strings.TrimSpace(notice.Message)
	}
	if message == "" {
		message = strings.TrimSpace(notice.Key)
	}
	if message == "" {
		return nil
	}
	return &webtemplates.AppToast{
		Kind:    string(notice.Kind),
		Message: message,
	}
}
