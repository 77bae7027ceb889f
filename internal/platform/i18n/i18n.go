// Package i18n owns the set of languages quillroom is translated into.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

var (
	supportedTags = []language.Tag{
		language.AmericanEnglish,
		language.BrazilianPortuguese,
	}
	matcher = language.NewMatcher(supportedTags)
)

// SupportedTags returns the supported language tags, default first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supportedTags))
	copy(out, supportedTags)
	return out
}

// DefaultTag returns the fallback language.
func DefaultTag() language.Tag {
	return supportedTags[0]
}

// ParseTag parses value and reports whether it maps onto a supported tag.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Tag{}, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Tag{}, false
	}
	matched, _, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Tag{}, false
	}
	return normalize(matched), true
}

// MatchTags picks the best supported tag for an ordered preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	matched, _, _ := matcher.Match(tags...)
	return normalize(matched)
}

// LocaleName returns the catalog locale identifier for a tag, e.g. "pt-BR".
func LocaleName(tag language.Tag) string {
	return normalize(tag).String()
}

// normalize strips matcher extensions (the "-u-rg-..." suffix) so matched
// tags compare equal to the supported values.
func normalize(tag language.Tag) language.Tag {
	base, _ := tag.Base()
	region, _ := tag.Region()
	for _, supported := range supportedTags {
		sBase, _ := supported.Base()
		sRegion, _ := supported.Region()
		if sBase == base && sRegion == region {
			return supported
		}
	}
	for _, supported := range supportedTags {
		sBase, _ := supported.Base()
		if sBase == base {
			return supported
		}
	}
	return DefaultTag()
}
