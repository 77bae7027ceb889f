package groups

import (
	"context"
	"strings"
	"unicode/utf8"

	apperrors "github.com/louisbranch/quillroom/internal/services/web/platform/errors"
)

const groupNameMaxLength = 255

// Group is the group state shown by the groups pages.
type Group struct {
	ID          string
	Name        string
	MemberCount int
}

// GroupGateway loads and renames groups for web handlers.
type GroupGateway interface {
	ListGroups(context.Context) ([]Group, error)
	GetGroup(context.Context, string) (Group, error)
	RenameGroup(context.Context, string, string) (Group, error)
}

type service struct {
	gateway GroupGateway
}

func newService(gateway GroupGateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway}
}

func (s service) listGroups(ctx context.Context) ([]Group, error) {
	groups, err := s.gateway.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	if groups == nil {
		return []Group{}, nil
	}
	return groups, nil
}

func (s service) getGroup(ctx context.Context, groupID string) (Group, error) {
	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return Group{}, errGroupNotFound()
	}
	return s.gateway.GetGroup(ctx, groupID)
}

// renameGroup validates the trimmed name before handing it to the gateway.
func (s service) renameGroup(ctx context.Context, groupID string, name string) (Group, error) {
	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return Group{}, errGroupNotFound()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Group{}, apperrors.EK(apperrors.KindInvalidInput, "error.web.group_name_required", "Name is required")
	}
	if utf8.RuneCountInString(name) > groupNameMaxLength {
		return Group{}, apperrors.EK(apperrors.KindInvalidInput, "error.web.group_name_too_long", "Name must be 255 characters or fewer")
	}
	return s.gateway.RenameGroup(ctx, groupID, name)
}

func errGroupNotFound() error {
	return apperrors.EK(apperrors.KindNotFound, "error.web.group_not_found", "Group not found")
}
