package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/quillroom/internal/platform/otel"
)

func TestSetupNoopCases(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		enabled  string
	}{
		{name: "empty endpoint", endpoint: "", enabled: ""},
		{name: "explicitly disabled", endpoint: "http://localhost:4318", enabled: "false"},
		{name: "disabled uppercase", endpoint: "http://localhost:4318", enabled: "FALSE"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("QUILLROOM_OTEL_ENDPOINT", tc.endpoint)
			t.Setenv("QUILLROOM_OTEL_ENABLED", tc.enabled)

			shutdown, err := otel.Setup(context.Background(), "test-service")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			if err := shutdown(ctx); err != nil {
				t.Fatalf("noop shutdown should not error: %v", err)
			}
		})
	}
}

func TestSetupCreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address; nothing is exported before shutdown.
	t.Setenv("QUILLROOM_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("QUILLROOM_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "web")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}
