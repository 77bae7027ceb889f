package templates

import (
	"fmt"

	"golang.org/x/text/message"
)

// Localizer provides translated strings for web templ components.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T returns a translated string or a key-derived fallback.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	if keyString, ok := key.(string); ok {
		if len(args) > 0 {
			return fmt.Sprintf(keyString, args...)
		}
		return keyString
	}
	return ""
}

// MemberCount renders a group size, singular for exactly one member.
func MemberCount(loc Localizer, count int) string {
	if count == 1 {
		return T(loc, "web.groups.members_one", count)
	}
	return T(loc, "web.groups.members", count)
}
