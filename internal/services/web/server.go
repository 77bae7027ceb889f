package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/louisbranch/quillroom/internal/platform/timeouts"
	webapp "github.com/louisbranch/quillroom/internal/services/web/app"
	"github.com/louisbranch/quillroom/internal/services/web/modules"
	"github.com/louisbranch/quillroom/internal/services/web/platform/httpx"
	"github.com/louisbranch/quillroom/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/quillroom/internal/services/web/platform/mutationform"
	"github.com/louisbranch/quillroom/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/quillroom/internal/services/web/routepath"
	webstorage "github.com/louisbranch/quillroom/internal/services/web/storage"
	"github.com/rs/zerolog"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr string
	Store    webstorage.Store
	Logger   zerolog.Logger

	// TrustForwardedProto lets X-Forwarded-Proto decide the request scheme
	// for same-origin checks and cookie security.
	TrustForwardedProto bool
	// UserHeader names the trusted proxy header carrying the user id.
	UserHeader string
	// DevUserID is used when no user header is present.
	DevUserID string
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     zerolog.Logger
}

type healthResponse struct {
	Status  string          `json:"status"`
	Modules map[string]bool `json:"modules"`
}

// NewHandler builds the root handler from the default module registry.
func NewHandler(cfg Config) (http.Handler, error) {
	principal := newPrincipalResolver(cfg)
	policy := requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto}
	resolvers := modules.ModuleResolvers{
		ResolveViewer:   principal.resolveViewer,
		ResolveUserID:   principal.resolveRequestUserID,
		ResolveLanguage: principal.resolveRequestLanguage,
	}
	deps := modules.Dependencies{
		Guard:        mutationform.NewGuard(),
		Logger:       cfg.Logger,
		SchemePolicy: policy,
	}
	if cfg.Store != nil {
		deps.Groups = cfg.Store
		deps.Documents = cfg.Store
	}
	appModules := modules.DefaultAppModules(deps, resolvers)

	root, err := webapp.Compose(webapp.ComposeInput{
		UserRequired:        principal.hasUser,
		Modules:             appModules,
		RequestSchemePolicy: policy,
	})
	if err != nil {
		return nil, err
	}
	base := modulehandler.NewBase(resolvers.ResolveUserID, resolvers.ResolveLanguage, resolvers.ResolveViewer)
	root.HandleFunc(http.MethodGet+" "+routepath.Health, healthHandler(appModules))
	root.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", redirectToHome)
	root.HandleFunc(http.MethodGet+" "+routepath.AppPrefix+"{$}", redirectToHome)
	root.HandleFunc(routepath.Root, base.WriteNotFound)

	return httpx.Chain(root,
		httpx.RecoverPanic(cfg.Logger),
		httpx.RequestID(),
		httpx.WithUser(principal.resolveIncomingUserID),
		httpx.RequestLogger(cfg.Logger),
	), nil
}

func redirectToHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, routepath.AppGroups, http.StatusFound)
}

// healthHandler reports 503 while any module runs without its store.
func healthHandler(appModules []modules.Module) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		health := modules.Healthy(appModules)
		response := healthResponse{Status: "ok", Modules: health}
		status := http.StatusOK
		for _, healthy := range health {
			if !healthy {
				response.Status = "degraded"
				status = http.StatusServiceUnavailable
				break
			}
		}
		_ = httpx.WriteJSON(w, status, response)
	}
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		logger:   cfg.Logger,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpAddr).Msg("web server listening")
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
