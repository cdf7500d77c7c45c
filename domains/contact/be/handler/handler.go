package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/exchangedesk/fortworth1031/domains/contact/be/service"
	platformlogging "github.com/exchangedesk/fortworth1031/platform/go/logging"
	"github.com/exchangedesk/fortworth1031/platform/go/problem"
	"github.com/exchangedesk/fortworth1031/platform/go/render"
)

const maxFormBytes = 64 << 10

// Handler serves the contact form and the leads JSON API.
type Handler struct {
	svc    service.Service
	pages  *render.Renderer
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, pages *render.Renderer, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("contact service is required")
	}
	if pages == nil {
		panic("renderer is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, pages: pages, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/contact", h.formPage)
	r.Post("/contact", h.submitForm)
}

func (h *Handler) APIRoutes(r chi.Router) {
	r.Post("/leads", h.createLead)
}

// FormData feeds the contact page.
type FormData struct {
	Form    service.Input
	Success bool
	Error   string
}

func (h *Handler) formPage(w http.ResponseWriter, r *http.Request) {
	form := h.svc.Prefill(r.URL.Query().Get("projectType"))
	h.renderForm(w, r, http.StatusOK, FormData{Form: form})
}

func (h *Handler) submitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.loggerFrom(r.Context()).Warn("parse contact form failed", zap.Error(err))
		h.pages.Error(w, r, http.StatusBadRequest, "We could not read that form submission.")
		return
	}

	input := service.Input{
		Name:           r.PostForm.Get("name"),
		Email:          r.PostForm.Get("email"),
		Phone:          r.PostForm.Get("phone"),
		PropertySold:   r.PostForm.Get("propertySold"),
		EstimatedClose: r.PostForm.Get("estimatedClose"),
		City:           r.PostForm.Get("city"),
		Message:        r.PostForm.Get("message"),
		CaptchaToken:   r.PostForm.Get("captchaToken"),
		ProjectType:    r.PostForm.Get("projectType"),
		Timezone:       r.PostForm.Get("timezone"),
	}

	if _, err := h.svc.Submit(r.Context(), input); err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			h.renderForm(w, r, http.StatusBadRequest, FormData{Form: input, Error: verr.Message()})
		default:
			h.loggerFrom(r.Context()).Error("submit contact form failed", zap.Error(err))
			h.renderForm(w, r, http.StatusInternalServerError, FormData{Form: input, Error: service.SubmitFailedMessage})
		}
		return
	}

	h.renderForm(w, r, http.StatusOK, FormData{Success: true})
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, data FormData) {
	info := h.pages.Site()
	meta := h.pages.Meta(
		"Contact | 1031 Exchange "+info.PrimaryCity(),
		"Tell us about the property you sold and the replacement property you are looking for.",
		"/contact",
	)
	crumbs := []render.Crumb{{Label: "Home", Href: "/"}, {Label: "Contact", Href: "/contact"}}
	h.pages.HTML(w, r, status, "contact", meta, crumbs, data)
}

type leadCreated struct {
	ID uuid.UUID `json:"id"`
}

func (h *Handler) createLead(w http.ResponseWriter, r *http.Request) {
	var input service.Input
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		h.loggerFrom(r.Context()).Warn("decode lead failed", zap.Error(err))
		problem.Write(w, problem.New(http.StatusBadRequest, "Invalid request", "request body is not a valid lead", problem.TypeBadRequest, nil))
		return
	}

	lead, err := h.svc.Submit(r.Context(), input)
	if err != nil {
		h.writeProblem(w, r, err)
		return
	}
	problem.WriteJSON(w, http.StatusCreated, leadCreated{ID: lead.LeadID})
}

func (h *Handler) writeProblem(w http.ResponseWriter, r *http.Request, err error) {
	logger := h.loggerFrom(r.Context())
	fields := []zap.Field{zap.String("operation", "createLead"), zap.Error(err)}

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		logger.Warn("lead validation failed", fields...)
		problem.Write(w, problem.New(http.StatusBadRequest, "Validation failed", verr.Message(), problem.TypeValidation, verr.Fields))
		return
	}

	logger.Error("contact operation failed", fields...)
	problem.Write(w, problem.New(http.StatusInternalServerError, "Internal server error", service.SubmitFailedMessage, problem.TypeInternal, nil))
}

func (h *Handler) loggerFrom(ctx context.Context) *zap.Logger {
	if logger, ok := platformlogging.FromContext(ctx); ok {
		return logger
	}
	return h.logger
}
