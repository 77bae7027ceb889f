package requestctx

import (
	"context"
	"testing"
)

func TestUserIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithUserID(context.Background(), " user-1 ")
	if got := UserIDFromContext(ctx); got != "user-1" {
		t.Fatalf("UserIDFromContext() = %q, want %q", got, "user-1")
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "web-1")
	if got := RequestIDFromContext(ctx); got != "web-1" {
		t.Fatalf("RequestIDFromContext() = %q, want %q", got, "web-1")
	}
	if got := UserIDFromContext(ctx); got != "" {
		t.Fatalf("UserIDFromContext() = %q, want empty", got)
	}
}

func TestNilContextFallbacks(t *testing.T) {
	t.Parallel()

	//nolint:staticcheck // nil context is the case under test.
	if got := UserIDFromContext(nil); got != "" {
		t.Fatalf("UserIDFromContext(nil) = %q, want empty", got)
	}
	//nolint:staticcheck // nil context is the case under test.
	ctx := WithRequestID(nil, "web-2")
	if got := RequestIDFromContext(ctx); got != "web-2" {
		t.Fatalf("RequestIDFromContext() = %q, want %q", got, "web-2")
	}
}
