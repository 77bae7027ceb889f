package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapsKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want int
	}{
		{kind: KindInvalidInput, want: http.StatusBadRequest},
		{kind: KindUnauthorized, want: http.StatusUnauthorized},
		{kind: KindForbidden, want: http.StatusForbidden},
		{kind: KindNotFound, want: http.StatusNotFound},
		{kind: KindConflict, want: http.StatusConflict},
		{kind: KindUnavailable, want: http.StatusServiceUnavailable},
		{kind: KindUnknown, want: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := HTTPStatus(E(tc.kind, "x")); got != tc.want {
			t.Fatalf("HTTPStatus(%s) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestHTTPStatusNilAndPlainErrors(t *testing.T) {
	t.Parallel()

	if got := HTTPStatus(nil); got != http.StatusOK {
		t.Fatalf("HTTPStatus(nil) = %d, want %d", got, http.StatusOK)
	}
	if got := HTTPStatus(errors.New("boom")); got != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", got, http.StatusInternalServerError)
	}
}

func TestHTTPStatusUnwrapsTypedErrors(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("rename: %w", E(KindNotFound, "Group not found"))
	if got := HTTPStatus(err); got != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", got, http.StatusNotFound)
	}
	if got := KindOf(err); got != KindNotFound {
		t.Fatalf("KindOf() = %q, want %q", got, KindNotFound)
	}
}

func TestErrorStringFallsBackToKindWhenMessageEmpty(t *testing.T) {
	t.Parallel()

	err := Error{Kind: KindForbidden}
	if got := err.Error(); got != string(KindForbidden) {
		t.Fatalf("Error() = %q, want %q", got, string(KindForbidden))
	}
}

func TestLocalizationKey(t *testing.T) {
	t.Parallel()

	if got := LocalizationKey(EK(KindInvalidInput, " error.web.group_name_taken ", "taken")); got != "error.web.group_name_taken" {
		t.Fatalf("LocalizationKey() = %q", got)
	}
	if got := LocalizationKey(errors.New("plain")); got != "" {
		t.Fatalf("LocalizationKey(plain) = %q, want empty", got)
	}
}

func TestHTTPStatusUntypedErrorsAreInternal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "plain", err: errors.New("Network error"), want: http.StatusInternalServerError},
		{name: "wrapped conflict", err: fmt.Errorf("rename: %w", EK(KindConflict, "error.web.group_name_taken", "taken")), want: http.StatusConflict},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Fatalf("HTTPStatus() = %d, want %d", got, tc.want)
			}
		})
	}
}
