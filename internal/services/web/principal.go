package web

import (
	"net/http"
	"strings"

	"github.com/louisbranch/quillroom/internal/platform/requestctx"
	module "github.com/louisbranch/quillroom/internal/services/web/module"
)

// principalResolver derives the acting user for each request. Authentication
// happens upstream: the user id arrives in a proxy header, or the configured
// development user is used when the header is absent.
type principalResolver struct {
	userHeader string
	devUserID  string
}

func newPrincipalResolver(cfg Config) principalResolver {
	return principalResolver{
		userHeader: strings.TrimSpace(cfg.UserHeader),
		devUserID:  strings.TrimSpace(cfg.DevUserID),
	}
}

// resolveIncomingUserID reads the user from the raw request. It feeds the
// WithUser middleware.
func (p principalResolver) resolveIncomingUserID(r *http.Request) string {
	if r == nil {
		return ""
	}
	if p.userHeader != "" {
		if userID := strings.TrimSpace(r.Header.Get(p.userHeader)); userID != "" {
			return userID
		}
	}
	return p.devUserID
}

func (p principalResolver) resolveRequestUserID(r *http.Request) string {
	if r == nil {
		return ""
	}
	return requestctx.UserIDFromContext(r.Context())
}

func (p principalResolver) resolveViewer(r *http.Request) module.Viewer {
	return module.Viewer{DisplayName: p.resolveRequestUserID(r)}
}

func (p principalResolver) hasUser(r *http.Request) bool {
	return p.resolveRequestUserID(r) != ""
}

// resolveRequestLanguage defers to the lang query, cookie and
// Accept-Language resolution in the i18n package.
func (principalResolver) resolveRequestLanguage(*http.Request) string {
	return ""
}
