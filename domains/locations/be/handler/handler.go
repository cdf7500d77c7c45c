package handler

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"github.com/exchangedesk/fortworth1031/domains/locations/be/service"
	"github.com/exchangedesk/fortworth1031/platform/go/catalog"
	platformlogging "github.com/exchangedesk/fortworth1031/platform/go/logging"
	"github.com/exchangedesk/fortworth1031/platform/go/problem"
	"github.com/exchangedesk/fortworth1031/platform/go/render"
)

type operation string

const (
	listOperation operation = "listLocations"
	getOperation  operation = "getLocation"
)

// Handler serves the location pages and the locations JSON API.
type Handler struct {
	svc    service.Service
	pages  *render.Renderer
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, pages *render.Renderer, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("locations service is required")
	}
	if pages == nil {
		panic("renderer is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, pages: pages, logger: logger}
}

// Routes mounts the HTML pages.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/locations", h.listPage)
	r.Get("/locations/{slug}", h.detailPage)
}

// APIRoutes mounts the JSON endpoints relative to the /api/v1 prefix.
func (h *Handler) APIRoutes(r chi.Router) {
	r.Get("/locations", h.listJSON)
	r.Get("/locations/{slug}", h.getJSON)
}

// ListData feeds the directory page.
type ListData struct {
	Query       string
	Items       []catalog.LocationItem
	ContactHref string
}

// DetailData feeds the location page.
type DetailData struct {
	Item     catalog.LocationItem
	Body     template.HTML
	Services []catalog.ServiceItem
}

// ContactHref links an empty search to the contact form, prefilled with what was searched.
func ContactHref(query string) string {
	projectType := strings.TrimSpace(query)
	if projectType == "" {
		projectType = "Other"
	}
	return "/contact?projectType=" + url.QueryEscape(projectType)
}

func (h *Handler) listPage(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	items, err := h.svc.List(r.Context(), query)
	if err != nil {
		h.loggerFrom(r.Context()).Error("list locations failed", zap.Error(err))
		h.pages.Error(w, r, http.StatusInternalServerError, "Something went wrong loading locations.")
		return
	}

	info := h.pages.Site()
	meta := h.pages.Meta(
		"1031 Exchange Locations | "+info.PrimaryCity()+", "+info.StateAbbr(),
		"1031 exchange support across "+info.PrimaryCity()+" and the surrounding DFW communities.",
		"/locations",
	)
	crumbs := []render.Crumb{{Label: "Home", Href: "/"}, {Label: "Locations", Href: "/locations"}}

	h.pages.HTML(w, r, http.StatusOK, "locations", meta, crumbs, ListData{
		Query:       query,
		Items:       items,
		ContactHref: ContactHref(query),
	})
}

func (h *Handler) detailPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	detail, err := h.svc.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.pages.Error(w, r, http.StatusNotFound, "We could not find that location.")
			return
		}
		h.loggerFrom(r.Context()).Error("get location failed", zap.String("slug", slug), zap.Error(err))
		h.pages.Error(w, r, http.StatusInternalServerError, "Something went wrong loading this location.")
		return
	}

	item := detail.Item
	meta := h.pages.Meta("1031 Exchange "+item.Name+" | "+h.pages.Site().StateAbbr(), item.Description, item.Route)
	crumbs := []render.Crumb{
		{Label: "Home", Href: "/"},
		{Label: "Locations", Href: "/locations"},
		{Label: item.Name, Href: item.Route},
	}

	h.pages.HTML(w, r, http.StatusOK, "location", meta, crumbs, DetailData{
		Item: item,
		// Authored content shipped with the binary.
		Body:     template.HTML(detail.HTML), //nolint:gosec
		Services: detail.Services,
	})
}

type listResponse struct {
	Items []catalog.LocationItem `json:"items"`
}

func (h *Handler) listJSON(w http.ResponseWriter, r *http.Request) {
	var q string
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &q); err != nil {
		h.writeProblem(w, r, listOperation, &badParamError{err: err})
		return
	}

	items, err := h.svc.List(r.Context(), q)
	if err != nil {
		h.writeProblem(w, r, listOperation, err)
		return
	}
	problem.WriteJSON(w, http.StatusOK, listResponse{Items: items})
}

func (h *Handler) getJSON(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeProblem(w, r, getOperation, err)
		return
	}
	problem.WriteJSON(w, http.StatusOK, detail.Item)
}

type badParamError struct {
	err error
}

func (e *badParamError) Error() string { return e.err.Error() }

func (h *Handler) writeProblem(w http.ResponseWriter, r *http.Request, op operation, err error) {
	status, title, detail, problemType := classifyError(err)

	logger := h.loggerFrom(r.Context())
	fields := []zap.Field{
		zap.String("operation", string(op)),
		zap.Int("status", status),
		zap.Error(err),
	}
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("locations operation failed", fields...)
	case status == http.StatusNotFound:
		logger.Info("location not found", fields...)
	default:
		logger.Warn("locations request rejected", fields...)
	}

	problem.Write(w, problem.New(status, title, detail, problemType, nil))
}

func classifyError(err error) (status int, title, detail, problemType string) {
	var paramErr *badParamError
	switch {
	case errors.As(err, &paramErr):
		return http.StatusBadRequest, "Invalid request", paramErr.Error(), problem.TypeBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "Resource not found", "location not found", problem.TypeNotFound
	default:
		return http.StatusInternalServerError, "Internal server error", "an unexpected error occurred", problem.TypeInternal
	}
}

func (h *Handler) loggerFrom(ctx context.Context) *zap.Logger {
	if logger, ok := platformlogging.FromContext(ctx); ok {
		return logger
	}
	return h.logger
}
