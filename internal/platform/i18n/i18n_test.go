package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestParseTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   language.Tag
		wantOK bool
	}{
		{in: "en-US", want: language.AmericanEnglish, wantOK: true},
		{in: "pt-BR", want: language.BrazilianPortuguese, wantOK: true},
		{in: "pt", want: language.BrazilianPortuguese, wantOK: true},
		{in: "", wantOK: false},
		{in: "not a tag!", wantOK: false},
	}
	for _, tc := range tests {
		got, ok := ParseTag(tc.in)
		if ok != tc.wantOK {
			t.Fatalf("ParseTag(%q) ok = %t, want %t", tc.in, ok, tc.wantOK)
		}
		if ok && got != tc.want {
			t.Fatalf("ParseTag(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestMatchTagsFallsBackToDefault(t *testing.T) {
	t.Parallel()

	if got := MatchTags(nil); got != DefaultTag() {
		t.Fatalf("MatchTags(nil) = %v, want %v", got, DefaultTag())
	}
	if got := MatchTags([]language.Tag{language.Japanese}); got != DefaultTag() {
		t.Fatalf("MatchTags(ja) = %v, want %v", got, DefaultTag())
	}
	if got := MatchTags([]language.Tag{language.Japanese, language.Portuguese}); got != language.BrazilianPortuguese {
		t.Fatalf("MatchTags(ja, pt) = %v, want pt-BR", got)
	}
}

func TestLocaleName(t *testing.T) {
	t.Parallel()

	if got := LocaleName(language.BrazilianPortuguese); got != "pt-BR" {
		t.Fatalf("LocaleName() = %q, want pt-BR", got)
	}
	if got := LocaleName(DefaultTag()); got != "en-US" {
		t.Fatalf("LocaleName() = %q, want en-US", got)
	}
}
