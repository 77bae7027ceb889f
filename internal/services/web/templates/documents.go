package templates

import (
	"context"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/quillroom/internal/services/web/routepath"
)

// titleSlot marks where the document title goes in the templatize help text.
const titleSlot = "\x00title\x00"

// DocumentListItem is one row of the documents page.
type DocumentListItem struct {
	ID       string
	Title    string
	Template bool
}

// DocumentDetailView is the read-only document page.
type DocumentDetailView struct {
	ID               string
	Text             string
	Template         bool
	TemplateSourceID string
}

// DocumentTemplatizeForm is the confirmation form that turns a document into
// a template.
type DocumentTemplatizeForm struct {
	DocumentID      string
	Title           string
	CanSubmit       bool
	SubmitLabel     string
	SubmittingLabel string
}

// DocumentsFragment lists documents.
func DocumentsFragment(items []DocumentListItem, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section id="documents">`)
		if len(items) == 0 {
			h.raw(`<p class="empty">`)
			h.text(T(loc, "web.documents.empty"))
			h.raw("</p></section>")
			return
		}
		h.raw(`<ul class="list">`)
		for _, item := range items {
			h.raw("<li><a")
			h.attr("href", routepath.AppDocument(item.ID))
			h.raw(">")
			h.text(item.Title)
			h.raw("</a>")
			if item.Template {
				writeTemplateBadge(h, loc)
			}
			h.raw("</li>")
		}
		h.raw("</ul></section>")
	})
}

// DocumentDetailFragment renders one document.
func DocumentDetailFragment(view DocumentDetailView, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section id="document-detail">`)
		if view.Template {
			writeTemplateBadge(h, loc)
			if view.TemplateSourceID != "" {
				h.raw(` <a class="muted"`)
				h.attr("href", routepath.AppDocument(view.TemplateSourceID))
				h.raw(">")
				h.text(T(loc, "web.documents.template_source", view.TemplateSourceID))
				h.raw("</a>")
			}
		}
		h.raw(`<pre class="document-text">`)
		h.text(view.Text)
		h.raw("</pre>")
		if !view.Template {
			h.raw(`<a class="btn"`)
			h.attr("href", routepath.AppDocumentTemplatizePath(view.ID))
			h.raw(">")
			h.text(T(loc, "web.documents.templatize.action"))
			h.raw("</a>")
		}
		h.raw("</section>")
	})
}

// DocumentTemplatizeFragment renders the templatize confirmation.
func DocumentTemplatizeFragment(form DocumentTemplatizeForm, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		action := routepath.AppDocumentTemplatizePath(form.DocumentID)
		h.raw(`<section id="document-templatize"><p class="help">`)
		help := T(loc, "web.documents.templatize.help", titleSlot)
		before, after, found := strings.Cut(help, titleSlot)
		h.text(before)
		if found {
			h.raw("<strong>")
			h.text(form.Title)
			h.raw("</strong>")
			h.text(after)
		}
		h.raw(`</p><form method="post"`)
		h.attr("action", action)
		h.attr("hx-post", action)
		h.raw(` hx-target="#main" hx-disabled-elt="find button[type=submit]" data-mutation-form><div class="actions"><button type="submit" class="btn btn-primary"`)
		h.attr("data-loading-label", form.SubmittingLabel)
		h.flag("disabled", !form.CanSubmit)
		h.raw(">")
		h.text(form.SubmitLabel)
		h.raw("</button> <a")
		h.attr("href", routepath.AppDocument(form.DocumentID))
		h.raw(">")
		h.text(T(loc, "core.cancel"))
		h.raw("</a></div></form></section>")
	})
}

func writeTemplateBadge(h *htmlWriter, loc Localizer) {
	h.raw(` <span class="badge">`)
	h.text(T(loc, "web.documents.template_badge"))
	h.raw("</span>")
}
