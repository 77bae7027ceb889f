// Package modules defines web module registry helpers.
package modules

import (
	module "github.com/louisbranch/quillroom/internal/services/web/module"
	"github.com/louisbranch/quillroom/internal/services/web/platform/mutationform"
	"github.com/louisbranch/quillroom/internal/services/web/platform/requestmeta"
	webstorage "github.com/louisbranch/quillroom/internal/services/web/storage"
	"github.com/rs/zerolog"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// ModuleResolvers carries request-scoped resolver functions. The server
// builds them once and passes them to registry functions for module
// composition.
type ModuleResolvers struct {
	ResolveViewer   module.ResolveViewer
	ResolveUserID   module.ResolveUserID
	ResolveLanguage module.ResolveLanguage
}

// Dependencies carries the stores and shared collaborators required to
// compose the web module registry. Each module receives only the narrow store
// interface it consumes.
type Dependencies struct {
	Groups    webstorage.GroupStore
	Documents webstorage.DocumentStore

	// Guard is shared by every mutation form so overlapping submissions of
	// the same form are refused across requests.
	Guard        *mutationform.Guard
	Logger       zerolog.Logger
	SchemePolicy requestmeta.SchemePolicy
}
