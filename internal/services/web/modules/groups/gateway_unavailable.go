package groups

import (
	"context"

	apperrors "github.com/louisbranch/quillroom/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func (unavailableGateway) ListGroups(context.Context) ([]Group, error) {
	return nil, errUnavailable()
}

func (unavailableGateway) GetGroup(context.Context, string) (Group, error) {
	return Group{}, errUnavailable()
}

func (unavailableGateway) RenameGroup(context.Context, string, string) (Group, error) {
	return Group{}, errUnavailable()
}

func errUnavailable() error {
	return apperrors.EK(apperrors.KindUnavailable, "error.web.storage_unavailable", "groups storage is not configured")
}
