package modules

import (
	module "github.com/louisbranch/quillroom/internal/services/web/module"
	"github.com/louisbranch/quillroom/internal/services/web/modules/documents"
	"github.com/louisbranch/quillroom/internal/services/web/modules/groups"
	"github.com/louisbranch/quillroom/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/quillroom/internal/services/web/platform/mutationform"
)

// DefaultAppModules returns the app modules mounted under /app/.
func DefaultAppModules(deps Dependencies, resolvers ModuleResolvers) []Module {
	base := modulehandler.NewBase(resolvers.ResolveUserID, resolvers.ResolveLanguage, resolvers.ResolveViewer)
	guard := deps.Guard
	if guard == nil {
		guard = mutationform.NewGuard()
	}
	return []Module{
		groups.New(
			groups.WithGateway(groups.NewStoreGateway(deps.Groups)),
			groups.WithBase(base),
			groups.WithGuard(guard),
			groups.WithLogger(deps.Logger),
		),
		documents.New(
			documents.WithGateway(documents.NewStoreGateway(deps.Documents)),
			documents.WithBase(base),
			documents.WithGuard(guard),
			documents.WithLogger(deps.Logger),
			documents.WithSchemePolicy(deps.SchemePolicy),
		),
	}
}

// Healthy collects availability for every module that reports health.
func Healthy(mods []Module) map[string]bool {
	out := make(map[string]bool, len(mods))
	for _, mod := range mods {
		reporter, ok := mod.(module.HealthReporter)
		if !ok {
			continue
		}
		out[mod.ID()] = reporter.Healthy()
	}
	return out
}
