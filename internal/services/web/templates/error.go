package templates

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/quillroom/internal/services/web/routepath"
)

const (
	appErrorTitleNotFoundKey  = "error.web.page.not_found_title"
	appErrorBodyNotFoundKey   = "error.web.page.not_found_body"
	appErrorTitleServerErrKey = "error.web.page.server_title"
	appErrorBodyServerErrKey  = "error.web.page.server_body"
)

// AppErrorPageTitle returns the browser page title for app error pages.
func AppErrorPageTitle(statusCode int, loc Localizer) string {
	if normalizeAppErrorStatus(statusCode) == http.StatusNotFound {
		return T(loc, appErrorTitleNotFoundKey)
	}
	return T(loc, appErrorTitleServerErrKey)
}

// AppErrorState renders the app error fragment for 404 and 5xx responses.
func AppErrorState(statusCode int, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		body := appErrorBodyServerErrKey
		if normalizeAppErrorStatus(statusCode) == http.StatusNotFound {
			body = appErrorBodyNotFoundKey
		}
		h.raw(`<section id="app-error" class="app-error"><h2>`)
		h.text(AppErrorPageTitle(statusCode, loc))
		h.raw("</h2><p>")
		h.text(T(loc, body))
		h.raw("</p><a")
		h.attr("href", routepath.AppGroups)
		h.raw(">")
		h.text(T(loc, "core.nav.groups"))
		h.raw("</a></section>")
	})
}

func normalizeAppErrorStatus(statusCode int) int {
	if statusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
