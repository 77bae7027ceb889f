package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/louisbranch/quillroom/internal/services/web/routepath"
)

// GroupListItem is one row of the groups page.
type GroupListItem struct {
	ID          string
	Name        string
	MemberCount int
}

// GroupDetailView is the group overview.
type GroupDetailView struct {
	ID          string
	Name        string
	MemberCount int
}

// GroupEditForm is the rename form state.
type GroupEditForm struct {
	GroupID         string
	Name            string
	CanSubmit       bool
	SubmitLabel     string
	SubmittingLabel string
}

// GroupsFragment lists groups.
func GroupsFragment(items []GroupListItem, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section id="groups">`)
		if len(items) == 0 {
			h.raw(`<p class="empty">`)
			h.text(T(loc, "web.groups.empty"))
			h.raw("</p></section>")
			return
		}
		h.raw(`<ul class="list">`)
		for _, item := range items {
			h.raw("<li><a")
			h.attr("href", routepath.AppGroup(item.ID))
			h.raw(">")
			h.text(item.Name)
			h.raw(`</a> <span class="muted">`)
			h.text(MemberCount(loc, item.MemberCount))
			h.raw(`</span> <a class="action"`)
			h.attr("href", routepath.AppGroupEdit(item.ID))
			h.raw(">")
			h.text(T(loc, "web.groups.edit.action"))
			h.raw("</a></li>")
		}
		h.raw("</ul></section>")
	})
}

// GroupDetailFragment renders one group.
func GroupDetailFragment(view GroupDetailView, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section id="group-detail"><p class="muted">`)
		h.text(MemberCount(loc, view.MemberCount))
		h.raw(`</p><a class="btn"`)
		h.attr("href", routepath.AppGroupEdit(view.ID))
		h.raw(">")
		h.text(T(loc, "web.groups.edit.action"))
		h.raw("</a></section>")
	})
}

// GroupEditFragment renders the rename form.
func GroupEditFragment(form GroupEditForm, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		action := routepath.AppGroupEdit(form.GroupID)
		h.raw(`<section id="group-edit"><p class="help">`)
		h.text(T(loc, "web.groups.edit.help"))
		h.raw(`</p><form method="post"`)
		h.attr("action", action)
		h.attr("hx-post", action)
		h.raw(` hx-target="#main" hx-disabled-elt="find button[type=submit]" data-mutation-form><label for="group-name">`)
		h.text(T(loc, "web.groups.edit.name_label"))
		h.raw(`</label><input id="group-name" type="text" name="name" maxlength="255" autocomplete="off" required autofocus`)
		h.attr("value", form.Name)
		h.raw(`><div class="actions"><button type="submit" class="btn btn-primary"`)
		h.attr("data-loading-label", form.SubmittingLabel)
		h.flag("disabled", !form.CanSubmit)
		h.raw(">")
		h.text(form.SubmitLabel)
		h.raw("</button> <a")
		h.attr("href", routepath.AppGroup(form.GroupID))
		h.raw(">")
		h.text(T(loc, "core.cancel"))
		h.raw("</a></div></form></section>")
	})
}
