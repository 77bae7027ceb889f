package documents

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/quillroom/internal/platform/timeouts"
	apperrors "github.com/louisbranch/quillroom/internal/services/web/platform/errors"
	"github.com/louisbranch/quillroom/internal/services/web/platform/flash"
	"github.com/louisbranch/quillroom/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/quillroom/internal/services/web/platform/i18n"
	"github.com/louisbranch/quillroom/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/quillroom/internal/services/web/platform/mutationform"
	"github.com/louisbranch/quillroom/internal/services/web/platform/pagerender"
	"github.com/louisbranch/quillroom/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/quillroom/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/quillroom/internal/services/web/templates"
	"github.com/rs/zerolog"
)

const templateCreatedKey = "web.documents.templatize.notice_created"

// documentService defines the service operations used by document handlers.
type documentService interface {
	listDocuments(ctx context.Context) ([]Document, error)
	getDocument(ctx context.Context, documentID string) (Document, error)
	templatizeDocument(ctx context.Context, documentID string) (Document, error)
}

type handlers struct {
	modulehandler.Base
	service documentService
	guard   *mutationform.Guard
	logger  zerolog.Logger
	policy  requestmeta.SchemePolicy
	timeout time.Duration
}

func newHandlers(s documentService, base modulehandler.Base, guard *mutationform.Guard, logger zerolog.Logger, policy requestmeta.SchemePolicy) handlers {
	if guard == nil {
		guard = mutationform.NewGuard()
	}
	return handlers{Base: base, service: s, guard: guard, logger: logger, policy: policy, timeout: timeouts.Mutation}
}

func documentsBreadcrumbs(loc webtemplates.Localizer, trail ...webtemplates.Breadcrumb) webtemplates.AppMainLayoutOptions {
	crumbs := []webtemplates.Breadcrumb{{Label: webtemplates.T(loc, "web.documents.title"), URL: routepath.AppDocuments}}
	return webtemplates.AppMainLayoutOptions{Breadcrumbs: append(crumbs, trail...)}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.PageLocalizer(w, r)
	ctx, _ := h.RequestContextAndUserID(r)
	documents, err := h.service.listDocuments(ctx)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	items := make([]webtemplates.DocumentListItem, 0, len(documents))
	for _, document := range documents {
		items = append(items, webtemplates.DocumentListItem{ID: document.ID, Title: document.Title, Template: document.Template})
	}
	title := webtemplates.T(loc, "web.documents.title")
	h.WritePage(w, r, title, http.StatusOK, &webtemplates.AppMainHeader{Title: title}, webtemplates.AppMainLayoutOptions{}, webtemplates.DocumentsFragment(items, loc))
}

func (h handlers) handleDetailRoute(w http.ResponseWriter, r *http.Request) {
	documentID := strings.TrimSpace(r.PathValue("documentID"))
	if documentID == "" {
		h.WriteNotFound(w, r)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	ctx, _ := h.RequestContextAndUserID(r)
	document, err := h.service.getDocument(ctx, documentID)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WritePage(
		w, r,
		document.Title,
		http.StatusOK,
		&webtemplates.AppMainHeader{Title: document.Title},
		documentsBreadcrumbs(loc, webtemplates.Breadcrumb{Label: document.Title}),
		webtemplates.DocumentDetailFragment(webtemplates.DocumentDetailView{
			ID:               document.ID,
			Text:             document.Text,
			Template:         document.Template,
			TemplateSourceID: document.TemplateSourceID,
		}, loc),
	)
}

func (h handlers) handleTemplatizeGet(w http.ResponseWriter, r *http.Request) {
	documentID := strings.TrimSpace(r.PathValue("documentID"))
	ctx, userID := h.RequestContextAndUserID(r)
	document, err := h.service.getDocument(ctx, documentID)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	form, err := h.newTemplatizeForm(w, r, document, userID, nil)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.renderTemplatizePage(w, r, http.StatusOK, document, form.Snapshot(), nil)
}

func (h handlers) handleTemplatizePost(w http.ResponseWriter, r *http.Request) {
	documentID := strings.TrimSpace(r.PathValue("documentID"))
	ctx, userID := h.RequestContextAndUserID(r)
	document, err := h.service.getDocument(ctx, documentID)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, _ := h.PageLocalizer(w, r)

	var failure *mutationform.Notice
	form, err := h.newTemplatizeForm(w, r, document, userID, func(notice mutationform.Notice) {
		if notice.Severity == mutationform.SeverityError {
			failure = &notice
			return
		}
		flash.WriteWithPolicy(w, r, flashNotice(notice), h.policy)
	})
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	result, err := form.Submit(ctx)
	switch {
	case errors.Is(err, mutationform.ErrInFlight):
		inFlight := errSubmissionInFlight()
		h.renderTemplatizePage(w, r, apperrors.HTTPStatus(inFlight), document, form.Snapshot(), errorToast(webi18n.LocalizeError(loc, inFlight)))
	case err != nil:
		h.WriteError(w, r, err)
	case !result.OK():
		message := webi18n.LocalizeError(loc, result.Err)
		if failure != nil && failure.Message != "" {
			message = failure.Message
		}
		h.renderTemplatizePage(w, r, apperrors.HTTPStatus(result.Err), document, form.Snapshot(), errorToast(message))
	}
}

// newTemplatizeForm builds the controller for one request. Navigation
// records the new template path and the completion callback redirects to it.
func (h handlers) newTemplatizeForm(w http.ResponseWriter, r *http.Request, document Document, userID string, notify func(mutationform.Notice)) (*mutationform.Controller, error) {
	loc, _ := h.PageLocalizer(w, r)
	documentID := document.ID
	logger := h.logger.With().Str("document_id", documentID).Str("user_id", userID).Logger()
	location := routepath.AppDocument(documentID)
	return mutationform.New(mutationform.Config{
		Mutate: func(ctx context.Context, _ map[string]string) (mutationform.Outcome, error) {
			template, err := h.service.templatizeDocument(ctx, documentID)
			if err != nil {
				return mutationform.Outcome{}, err
			}
			return mutationform.Outcome{Location: routepath.AppDocument(template.ID)}, nil
		},
		Navigate: func(path string) { location = path },
		Notify:   notify,
		SuccessNotice: &mutationform.Notice{
			Severity: mutationform.SeverityInfo,
			Key:      templateCreatedKey,
			Message:  webtemplates.T(loc, templateCreatedKey),
		},
		OnSuccess: func() {
			httpx.WriteRedirect(w, r, location)
		},
		Describe: func(err error) string { return webi18n.LocalizeError(loc, err) },
		Labels: mutationform.Labels{
			Submit:     webtemplates.T(loc, "web.documents.templatize.submit"),
			Submitting: webtemplates.T(loc, "web.documents.templatize.submitting"),
		},
		Guard:   h.guard,
		Key:     "documents.templatize:" + userID + ":" + documentID,
		Timeout: h.timeout,
		Logger:  &logger,
	})
}

func errSubmissionInFlight() error {
	return apperrors.EK(apperrors.KindConflict, "web.form.in_flight", "This form is already being submitted, please wait.")
}

func (h handlers) renderTemplatizePage(w http.ResponseWriter, r *http.Request, statusCode int, document Document, snapshot mutationform.Snapshot, toast *webtemplates.AppToast) {
	loc, _ := h.PageLocalizer(w, r)
	title := webtemplates.T(loc, "web.documents.templatize.title")
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:      title,
		StatusCode: statusCode,
		Header:     &webtemplates.AppMainHeader{Title: title},
		Layout: documentsBreadcrumbs(loc,
			webtemplates.Breadcrumb{Label: document.Title, URL: routepath.AppDocument(document.ID)},
			webtemplates.Breadcrumb{Label: title},
		),
		Fragment: webtemplates.DocumentTemplatizeFragment(webtemplates.DocumentTemplatizeForm{
			DocumentID:      document.ID,
			Title:           document.Title,
			CanSubmit:       snapshot.CanSubmit,
			SubmitLabel:     snapshot.SubmitLabel,
			SubmittingLabel: webtemplates.T(loc, "web.documents.templatize.submitting"),
		}, loc),
		Toast: toast,
	})
}

func flashNotice(notice mutationform.Notice) flash.Notice {
	kind := flash.KindInfo
	if notice.Severity == mutationform.SeveritySuccess {
		kind = flash.KindSuccess
	}
	return flash.Notice{Kind: kind, Key: notice.Key, Message: notice.Message}
}

func errorToast(message string) *webtemplates.AppToast {
	return &webtemplates.AppToast{Kind: "error", Message: message}
}
