package templates

import (
	"context"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/quillroom/internal/services/web/module"
	"github.com/louisbranch/quillroom/internal/services/web/routepath"
)

const htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4"

// AppToast is a one-time notice shown above the main content.
type AppToast struct {
	Kind    string
	Message string
}

// AppMainHeader is the heading block of an app page.
type AppMainHeader struct {
	Title string
}

// Breadcrumb is one entry of the main-content trail. An empty URL marks the
// current page.
type Breadcrumb struct {
	Label string
	URL   string
}

// AppMainLayoutOptions tunes the main content area.
type AppMainLayoutOptions struct {
	Breadcrumbs []Breadcrumb
}

// AppLayoutWithMainHeaderAndLayout renders the full app shell around the
// children in ctx.
func AppLayoutWithMainHeaderAndLayout(title string, viewer module.Viewer, header *AppMainHeader, layout AppMainLayoutOptions, toast *AppToast, lang string, loc Localizer) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		appName := T(loc, "core.app_name")
		pageTitle := appName
		if title = strings.TrimSpace(title); title != "" {
			pageTitle = title + " · " + appName
		}
		if lang = strings.TrimSpace(lang); lang == "" {
			lang = "en-US"
		}

		h.raw("<!doctype html><html")
		h.attr("lang", lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(pageTitle)
		h.raw(`</title><script`)
		h.attr("src", htmxScriptURL)
		h.raw(` defer></script></head><body hx-boost="true"><header class="navbar"><a class="brand"`)
		h.attr("href", routepath.AppGroups)
		h.raw(">")
		h.text(appName)
		h.raw(`</a><nav><a`)
		h.attr("href", routepath.AppGroups)
		h.raw(">")
		h.text(T(loc, "core.nav.groups"))
		h.raw(`</a><a`)
		h.attr("href", routepath.AppDocuments)
		h.raw(">")
		h.text(T(loc, "core.nav.documents"))
		h.raw("</a></nav>")
		if name := strings.TrimSpace(viewer.DisplayName); name != "" {
			h.raw(`<span class="viewer">`)
			h.text(T(loc, "core.signed_in_as", name))
			h.raw("</span>")
		}
		h.raw("</header>")
		h.component(ctx, AppToastRegion(toast, false))
		h.raw(`<main id="main">`)
		h.component(ctx, AppMainContentWithLayout(header, layout))
		h.raw(`</main><script>`)
		h.raw(mutationFormScript)
		h.raw(`</script></body></html>`)
	})
}

// AppMainContentWithLayout renders the main content block used by both full
// pages and HTMX swaps.
func AppMainContentWithLayout(header *AppMainHeader, layout AppMainLayoutOptions) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<div id="app-main-content">`)
		if len(layout.Breadcrumbs) > 0 {
			h.raw(`<nav class="breadcrumbs"><ol>`)
			for _, crumb := range layout.Breadcrumbs {
				h.raw("<li>")
				if crumb.URL == "" {
					h.raw(`<span aria-current="page">`)
					h.text(crumb.Label)
					h.raw("</span>")
				} else {
					h.raw("<a")
					h.attr("href", crumb.URL)
					h.raw(">")
					h.text(crumb.Label)
					h.raw("</a>")
				}
				h.raw("</li>")
			}
			h.raw("</ol></nav>")
		}
		if header != nil && strings.TrimSpace(header.Title) != "" {
			h.raw("<h1>")
			h.text(header.Title)
			h.raw("</h1>")
		}
		h.component(ctx, templ.GetChildren(ctx))
		h.raw("</div>")
	})
}

// AppToastRegion renders the toast container. Out-of-band regions replace
// the page's toast during HTMX swaps.
func AppToastRegion(toast *AppToast, outOfBand bool) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<div id="app-toast"`)
		if outOfBand {
			h.raw(` hx-swap-oob="true"`)
		}
		h.raw(">")
		if toast != nil && strings.TrimSpace(toast.Message) != "" {
			kind := strings.TrimSpace(toast.Kind)
			if kind == "" {
				kind = "info"
			}
			role := "status"
			if kind == "error" {
				role = "alert"
			}
			h.raw("<div")
			h.attr("class", "toast toast-"+kind)
			h.attr("role", role)
			h.raw(">")
			h.text(toast.Message)
			h.raw("</div>")
		}
		h.raw("</div>")
	})
}

// mutationFormScript mirrors the server-side submit rules in the browser:
// the submit button stays disabled while a required input is empty and
// switches to its progress label once the form is sent.
const mutationFormScript = `(function(){
function sync(form){
  var button=form.querySelector("button[type=submit]");
  if(!button||form.dataset.submitting==="true"){return;}
  var missing=Array.prototype.some.call(form.querySelectorAll("[required]"),function(el){return el.value.length===0;});
  button.disabled=missing;
}
document.addEventListener("input",function(e){
  var form=e.target.closest("form[data-mutation-form]");
  if(form){sync(form);}
});
document.addEventListener("submit",function(e){
  var form=e.target.closest("form[data-mutation-form]");
  if(!form){return;}
  var button=form.querySelector("button[type=submit]");
  if(form.dataset.submitting==="true"||(button&&button.disabled)){e.preventDefault();return;}
  form.dataset.submitting="true";
  if(button){
    setTimeout(function(){button.disabled=true;if(button.dataset.loadingLabel){button.textContent=button.dataset.loadingLabel;}},0);
  }
});
})();`
