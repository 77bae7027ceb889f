package groups

import (
	"net/http"

	"github.com/louisbranch/quillroom/internal/services/web/module"
	"github.com/louisbranch/quillroom/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/quillroom/internal/services/web/platform/mutationform"
	"github.com/louisbranch/quillroom/internal/services/web/routepath"
	"github.com/rs/zerolog"
)

// Option configures a groups module.
type Option func(*Module)

// WithGateway sets the groups gateway.
func WithGateway(g GroupGateway) Option {
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

// Module provides group routes.
type Module struct {
	gateway GroupGateway
	base    modulehandler.Base
	guard   *mutationform.Guard
	logger  zerolog.Logger
}

// New returns a groups module configured by the given options.
// Without a gateway the module starts in degraded mode.
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
func (Module) ID() string { return "groups" }

// Healthy reports whether the groups module has an operational gateway.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableGateway)
	return !unavailable
}

// Mount wires group route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(m.gateway)
	h := newHandlers(svc, m.base, m.guard, m.logger.With().Str("module", m.ID()).Logger())
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.GroupsPrefix, Handler: mux}, nil
}
