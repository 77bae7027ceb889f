package documents

import (
	"net/http"

	"github.com/louisbranch/quillroom/internal/services/web/module"
	"github.com/louisbranch/quillroom/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/quillroom/internal/services/web/platform/mutationform"
	"github.com/louisbranch/quillroom/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/quillroom/internal/services/web/routepath"
	"github.com/rs/zerolog"
)

// Option configures a documents module.
type Option func(*Module)

// WithGateway sets the documents gateway.
func WithGateway(g DocumentGateway) Option {
	return func(m *Module) { m.gateway = g }
}

// WithBase sets the handler base for app routes.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// WithGuard shares an in-flight guard across requests.
func WithGuard(g *mutationform.Guard) Option {
	return func(m *Module) { m.guard = g }
}

// WithLogger sets the logger used for form submissions.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Module) { m.logger = logger }
}

// WithSchemePolicy controls the Secure flag on notice cookies.
func WithSchemePolicy(policy requestmeta.SchemePolicy) Option {
	return func(m *Module) { m.policy = policy }
}

// Module provides document and template routes.
type Module struct {
	gateway DocumentGateway
	base    modulehandler.Base
	guard   *mutationform.Guard
	logger  zerolog.Logger
	policy  requestmeta.SchemePolicy
}

// New returns a documents module configured by the given options.
func New(opts ...Option) Module {
	m := Module{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&m)
	}
	if m.guard == nil {
		m.guard = mutationform.NewGuard()
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "documents" }

// Healthy reports whether the documents module has an operational gateway.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableGateway)
	return !unavailable
}

// Mount wires document route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.gateway), m.base, m.guard, m.logger.With().Str("module", m.ID()).Logger(), m.policy)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.DocumentsPrefix, Handler: mux}, nil
}
