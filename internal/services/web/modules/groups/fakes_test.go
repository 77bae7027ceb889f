package groups

import (
	"context"
	"sort"

	apperrors "github.com/louisbranch/quillroom/internal/services/web/platform/errors"
)

type renameCall struct {
	groupID string
	name    string
}

// fakeGateway implements GroupGateway for tests with canned groups, error
// injection, and call recording.
type fakeGateway struct {
	groups    map[string]Group
	listErr   error
	getErr    error
	renameErr error

	renameCalls []renameCall
}

func newPopulatedFakeGateway() *fakeGateway {
	return &fakeGateway{groups: map[string]Group{
		"g-eng":    {ID: "g-eng", Name: "Engineering", MemberCount: 4},
		"g-design": {ID: "g-design", Name: "Design", MemberCount: 2},
	}}
}

func (f *fakeGateway) ListGroups(context.Context) ([]Group, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]Group, 0, len(f.groups))
	for _, group := range f.groups {
		out = append(out, group)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeGateway) GetGroup(_ context.Context, groupID string) (Group, error) {
	if f.getErr != nil {
		return Group{}, f.getErr
	}
	group, ok := f.groups[groupID]
	if !ok {
		return Group{}, errGroupNotFound()
	}
	return group, nil
}

func (f *fakeGateway) RenameGroup(_ context.Context, groupID string, name string) (Group, error) {
	f.renameCalls = append(f.renameCalls, renameCall{groupID: groupID, name: name})
	if f.renameErr != nil {
		return Group{}, f.renameErr
	}
	group, ok := f.groups[groupID]
	if !ok {
		return Group{}, errGroupNotFound()
	}
	for id, other := range f.groups {
		if id != groupID && other.Name == name {
			return Group{}, apperrors.EK(apperrors.KindConflict, "error.web.group_name_taken", "The name of this group is already in use")
		}
	}
	group.Name = name
	f.groups[groupID] = group
	return group, nil
}
