package groups

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/quillroom/internal/platform/timeouts"
	apperrors "github.com/louisbranch/quillroom/internal/services/web/platform/errors"
	"github.com/louisbranch/quillroom/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/quillroom/internal/services/web/platform/i18n"
	"github.com/louisbranch/quillroom/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/quillroom/internal/services/web/platform/mutationform"
	"github.com/louisbranch/quillroom/internal/services/web/platform/pagerender"
	"github.com/louisbranch/quillroom/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/quillroom/internal/services/web/templates"
	"github.com/rs/zerolog"
)

const nameField = "name"

// groupService defines the service operations used by group handlers.
type groupService interface {
	listGroups(ctx context.Context) ([]Group, error)
	getGroup(ctx context.Context, groupID string) (Group, error)
	renameGroup(ctx context.Context, groupID string, name string) (Group, error)
}

type handlers struct {
	modulehandler.Base
	service groupService
	guard   *mutationform.Guard
	logger  zerolog.Logger
	timeout time.Duration
}

func newHandlers(s groupService, base modulehandler.Base, guard *mutationform.Guard, logger zerolog.Logger) handlers {
	if guard == nil {
		guard = mutationform.NewGuard()
	}
	return handlers{Base: base, service: s, guard: guard, logger: logger, timeout: timeouts.Mutation}
}

func groupsBreadcrumbs(loc webtemplates.Localizer, trail ...webtemplates.Breadcrumb) webtemplates.AppMainLayoutOptions {
	crumbs := []webtemplates.Breadcrumb{{Label: webtemplates.T(loc, "web.groups.title"), URL: routepath.AppGroups}}
	return webtemplates.AppMainLayoutOptions{Breadcrumbs: append(crumbs, trail...)}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.PageLocalizer(w, r)
	ctx, _ := h.RequestContextAndUserID(r)
	groups, err := h.service.listGroups(ctx)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	items := make([]webtemplates.GroupListItem, 0, len(groups))
	for _, group := range groups {
		items = append(items, webtemplates.GroupListItem{ID: group.ID, Name: group.Name, MemberCount: group.MemberCount})
	}
	title := webtemplates.T(loc, "web.groups.title")
	h.WritePage(w, r, title, http.StatusOK, &webtemplates.AppMainHeader{Title: title}, webtemplates.AppMainLayoutOptions{}, webtemplates.GroupsFragment(items, loc))
}

func (h handlers) handleDetailRoute(w http.ResponseWriter, r *http.Request) {
	groupID := strings.TrimSpace(r.PathValue("groupID"))
	if groupID == "" {
		h.WriteNotFound(w, r)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	ctx, _ := h.RequestContextAndUserID(r)
	group, err := h.service.getGroup(ctx, groupID)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WritePage(
		w, r,
		group.Name,
		http.StatusOK,
		&webtemplates.AppMainHeader{Title: group.Name},
		groupsBreadcrumbs(loc, webtemplates.Breadcrumb{Label: group.Name}),
		webtemplates.GroupDetailFragment(webtemplates.GroupDetailView{ID: group.ID, Name: group.Name, MemberCount: group.MemberCount}, loc),
	)
}

func (h handlers) handleEditGet(w http.ResponseWriter, r *http.Request) {
	groupID := strings.TrimSpace(r.PathValue("groupID"))
	ctx, userID := h.RequestContextAndUserID(r)
	group, err := h.service.getGroup(ctx, groupID)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	form, err := h.newRenameForm(w, r, group, userID, nil)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.renderEditPage(w, r, http.StatusOK, group, form.Snapshot(), nil)
}

func (h handlers) handleEditPost(w http.ResponseWriter, r *http.Request) {
	groupID := strings.TrimSpace(r.PathValue("groupID"))
	ctx, userID := h.RequestContextAndUserID(r)
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.EK(apperrors.KindInvalidInput, "error.web.failed_to_parse_form", "failed to parse group form"))
		return
	}
	group, err := h.service.getGroup(ctx, groupID)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, _ := h.PageLocalizer(w, r)

	var failure *mutationform.Notice
	form, err := h.newRenameForm(w, r, group, userID, func(notice mutationform.Notice) {
		if notice.Severity == mutationform.SeverityError {
			failure = &notice
		}
	})
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if err := form.SetField(nameField, r.PostForm.Get(nameField)); err != nil {
		h.WriteError(w, r, err)
		return
	}

	result, err := form.Submit(ctx)
	switch {
	case errors.Is(err, mutationform.ErrInFlight):
		inFlight := errSubmissionInFlight()
		h.renderEditPage(w, r, apperrors.HTTPStatus(inFlight), group, form.Snapshot(), errorToast(webi18n.LocalizeError(loc, inFlight)))
	case errors.Is(err, mutationform.ErrIncomplete):
		h.renderEditPage(w, r, http.StatusBadRequest, group, form.Snapshot(), errorToast(webtemplates.T(loc, "error.web.group_name_required")))
	case err != nil:
		h.WriteError(w, r, err)
	case !result.OK():
		message := webi18n.LocalizeError(loc, result.Err)
		if failure != nil && failure.Message != "" {
			message = failure.Message
		}
		h.renderEditPage(w, r, apperrors.HTTPStatus(result.Err), group, form.Snapshot(), errorToast(message))
	}
}

// newRenameForm builds the controller for one request. The completion
// callback redirects back to the group page.
func (h handlers) newRenameForm(w http.ResponseWriter, r *http.Request, group Group, userID string, notify func(mutationform.Notice)) (*mutationform.Controller, error) {
	loc, _ := h.PageLocalizer(w, r)
	groupID := group.ID
	logger := h.logger.With().Str("group_id", groupID).Str("user_id", userID).Logger()
	return mutationform.New(mutationform.Config{
		Fields:  []mutationform.Field{{Name: nameField, Required: true}},
		Initial: map[string]string{nameField: group.Name},
		Mutate: func(ctx context.Context, values map[string]string) (mutationform.Outcome, error) {
			_, err := h.service.renameGroup(ctx, groupID, values[nameField])
			return mutationform.Outcome{}, err
		},
		Notify: notify,
		OnSuccess: func() {
			httpx.WriteRedirect(w, r, routepath.AppGroup(groupID))
		},
		Describe: func(err error) string { return webi18n.LocalizeError(loc, err) },
		Labels: mutationform.Labels{
			Submit:     webtemplates.T(loc, "web.groups.edit.submit"),
			Submitting: webtemplates.T(loc, "web.groups.edit.submitting"),
		},
		Guard:   h.guard,
		Key:     "groups.rename:" + userID + ":" + groupID,
		Timeout: h.timeout,
		Logger:  &logger,
	})
}

func errSubmissionInFlight() error {
	return apperrors.EK(apperrors.KindConflict, "web.form.in_flight", "This form is already being submitted, please wait.")
}

func (h handlers) renderEditPage(w http.ResponseWriter, r *http.Request, statusCode int, group Group, snapshot mutationform.Snapshot, toast *webtemplates.AppToast) {
	loc, _ := h.PageLocalizer(w, r)
	title := webtemplates.T(loc, "web.groups.edit.title")
	submitting := webtemplates.T(loc, "web.groups.edit.submitting")
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:      title,
		StatusCode: statusCode,
		Header:     &webtemplates.AppMainHeader{Title: title},
		Layout: groupsBreadcrumbs(loc,
			webtemplates.Breadcrumb{Label: group.Name, URL: routepath.AppGroup(group.ID)},
			webtemplates.Breadcrumb{Label: title},
		),
		Fragment: webtemplates.GroupEditFragment(webtemplates.GroupEditForm{
			GroupID:         group.ID,
			Name:            snapshot.Values[nameField],
			CanSubmit:       snapshot.CanSubmit,
			SubmitLabel:     snapshot.SubmitLabel,
			SubmittingLabel: submitting,
		}, loc),
		Toast: toast,
	})
}

func errorToast(message string) *webtemplates.AppToast {
	return &webtemplates.AppToast{Kind: "error", Message: message}
}
