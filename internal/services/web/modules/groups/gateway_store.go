package groups

import (
	"context"
	"errors"

	apperrors "github.com/louisbranch/quillroom/internal/services/web/platform/errors"
	webstorage "github.com/louisbranch/quillroom/internal/services/web/storage"
)

// NewStoreGateway adapts a group store to the groups gateway. A nil store
// yields the unavailable gateway.
func NewStoreGateway(store webstorage.GroupStore) GroupGateway {
	if store == nil {
		return unavailableGateway{}
	}
	return storeGateway{store: store}
}

type storeGateway struct {
	store webstorage.GroupStore
}

func (g storeGateway) ListGroups(ctx context.Context) ([]Group, error) {
	records, err := g.store.ListGroups(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}
	groups := make([]Group, 0, len(records))
	for _, record := range records {
		groups = append(groups, groupFromRecord(record))
	}
	return groups, nil
}

func (g storeGateway) GetGroup(ctx context.Context, groupID string) (Group, error) {
	record, err := g.store.GetGroup(ctx, groupID)
	if err != nil {
		return Group{}, mapStoreError(err)
	}
	return groupFromRecord(record), nil
}

func (g storeGateway) RenameGroup(ctx context.Context, groupID string, name string) (Group, error) {
	record, err := g.store.RenameGroup(ctx, groupID, name)
	if err != nil {
		return Group{}, mapStoreError(err)
	}
	return groupFromRecord(record), nil
}

func groupFromRecord(record webstorage.Group) Group {
	return Group{ID: record.ID, Name: record.Name, MemberCount: record.MemberCount}
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, webstorage.ErrNotFound):
		return errGroupNotFound()
	case errors.Is(err, webstorage.ErrNameTaken):
		return apperrors.EK(apperrors.KindConflict, "error.web.group_name_taken", "The name of this group is already in use")
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.EK(apperrors.KindUnavailable, "error.web.mutation_timeout", "The request took too long, please try again")
	default:
		return apperrors.EK(apperrors.KindUnavailable, "error.web.storage_unavailable", "Storage is temporarily unavailable")
	}
}
