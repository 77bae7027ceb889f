// Package app composes web modules into the root HTTP handler.
package app

import (
	"fmt"
	"net/http"
	"strings"

	module "github.com/louisbranch/quillroom/internal/services/web/module"
	"github.com/louisbranch/quillroom/internal/services/web/platform/httpx"
	"github.com/louisbranch/quillroom/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/quillroom/internal/services/web/routepath"
)

// ComposeInput carries app modules and shared composition contracts.
type ComposeInput struct {
	// UserRequired reports whether a request carries an acting user. Nil
	// accepts every request.
	UserRequired        func(*http.Request) bool
	Modules             []module.Module
	RequestSchemePolicy requestmeta.SchemePolicy
}

// Compose builds a mux with every app module mounted under /app/.
func Compose(input ComposeInput) (*http.ServeMux, error) {
	root := http.NewServeMux()
	seen := make(map[string]string)
	wrap := wrapAppModule(input.UserRequired, input.RequestSchemePolicy)

	for _, feature := range input.Modules {
		if feature == nil {
			return nil, fmt.Errorf("app module is nil")
		}
		if err := mountAppModule(root, feature, seen, wrap); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func mountModule(
	root *http.ServeMux,
	feature module.Module,
	mount module.Mount,
	prefix string,
	seen map[string]string,
	wrap func(http.Handler) http.Handler,
) error {
	if previous, ok := seen[prefix]; ok {
		return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
	}
	seen[prefix] = feature.ID()

	handler := mount.Handler
	if wrap != nil {
		handler = wrap(handler)
	}
	root.Handle(prefix, handler)
	return nil
}

func mountAppModule(root *http.ServeMux, feature module.Module, seen map[string]string, wrap func(http.Handler) http.Handler) error {
	mount, prefix, err := resolveMount(feature)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(prefix, routepath.AppPrefix) || prefix == routepath.AppPrefix {
		return fmt.Errorf("module %q must mount under /app/, got %q", feature.ID(), prefix)
	}
	if err := mountModule(root, feature, mount, prefix, seen, wrap); err != nil {
		return err
	}
	// "/app/groups" would otherwise redirect to "/app/groups/".
	return mountModule(root, feature, mount, strings.TrimSuffix(prefix, "/"), seen, wrap)
}

func resolveMount(feature module.Module) (module.Mount, string, error) {
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if err := validatePrefix(mount.Prefix); err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
	}
	if mount.Handler == nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, mount.Prefix, nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("prefix is required")
	}
	if strings.TrimSpace(prefix) != prefix {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	if !strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("prefix must end with /")
	}
	return nil
}

func requireUser(present func(*http.Request) bool) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if present == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !present(r) {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func wrapAppModule(present func(*http.Request) bool, policy requestmeta.SchemePolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return httpx.Chain(next, requireUser(present), httpx.RequireSameOrigin(policy))
	}
}
