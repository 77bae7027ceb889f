// Package i18n resolves the request language and localized copy for web
// handlers.
package i18n

import (
	"net/http"
	"strings"
	"time"

	platformi18n "github.com/louisbranch/quillroom/internal/platform/i18n"
	_ "github.com/louisbranch/quillroom/internal/platform/i18n/catalog"
	apperrors "github.com/louisbranch/quillroom/internal/services/web/platform/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "qr_lang"
)

// Localizer provides translated strings.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// ResolveTag determines the request language.
//
// The explicit resolver wins when it returns a supported tag; otherwise the
// lang query param, the language cookie and Accept-Language are tried in
// that order.
func ResolveTag(r *http.Request, resolveLanguage func(*http.Request) string) language.Tag {
	tag, _ := resolveTag(r, resolveLanguage)
	return tag
}

// ResolveLocalizer returns a printer for the request language and persists
// an explicit lang query choice as a cookie.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request, resolveLanguage func(*http.Request) string) (Localizer, string) {
	tag, fromQuery := resolveTag(r, resolveLanguage)
	if fromQuery && w != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     LangCookieName,
			Value:    platformi18n.LocaleName(tag),
			Path:     "/",
			MaxAge:   int((365 * 24 * time.Hour).Seconds()),
			SameSite: http.SameSiteLaxMode,
		})
	}
	return message.NewPrinter(tag), platformi18n.LocaleName(tag)
}

// LocalizeError returns a user-facing message for err: the translated
// localization key when one exists, otherwise the error text itself.
func LocalizeError(loc Localizer, err error) string {
	if err == nil {
		return ""
	}
	if key := apperrors.LocalizationKey(err); key != "" && loc != nil {
		if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" && localized != key {
			return localized
		}
	}
	return err.Error()
}

func resolveTag(r *http.Request, resolveLanguage func(*http.Request) string) (language.Tag, bool) {
	if r == nil {
		return platformi18n.DefaultTag(), false
	}
	if resolveLanguage != nil {
		if tag, ok := platformi18n.ParseTag(resolveLanguage(r)); ok {
			return tag, false
		}
	}
	if r.URL != nil {
		if tag, ok := platformi18n.ParseTag(r.URL.Query().Get(LangParam)); ok {
			return tag, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := platformi18n.ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return platformi18n.MatchTags(tags), false
		}
	}
	return platformi18n.DefaultTag(), false
}
