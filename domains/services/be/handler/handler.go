package handler

import (
	"context"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/exchangedesk/fortworth1031/domains/services/be/service"
	"github.com/exchangedesk/fortworth1031/platform/go/catalog"
	platformlogging "github.com/exchangedesk/fortworth1031/platform/go/logging"
	"github.com/exchangedesk/fortworth1031/platform/go/problem"
	"github.com/exchangedesk/fortworth1031/platform/go/render"
)

type operation string

const (
	listOperation operation = "listServices"
	getOperation  operation = "getService"
)

// Handler serves the service pages and the services JSON API.
type Handler struct {
	svc    service.Service
	pages  *render.Renderer
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, pages *render.Renderer, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("services service is required")
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
	r.Get("/services", h.listPage)
	r.Get("/services/{slug}", h.detailPage)
}

func (h *Handler) APIRoutes(r chi.Router) {
	r.Get("/services", h.listJSON)
	r.Get("/services/{slug}", h.getJSON)
}

// ListData feeds the services index.
type ListData struct {
	Groups []service.Group
}

// DetailData feeds a service page.
type DetailData struct {
	Item    catalog.ServiceItem
	Body    template.HTML
	Related []catalog.ServiceItem
}

func (h *Handler) listPage(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.ByCategory(r.Context())
	if err != nil {
		h.loggerFrom(r.Context()).Error("group services failed", zap.Error(err))
		h.pages.Error(w, r, http.StatusInternalServerError, "Something went wrong loading services.")
		return
	}

	info := h.pages.Site()
	meta := h.pages.Meta(
		"1031 Exchange Services | "+info.PrimaryCity()+", "+info.StateAbbr(),
		"Exchange structures, replacement property identification, reporting and tax support for "+info.PrimaryCity()+" investors.",
		"/services",
	)
	crumbs := []render.Crumb{{Label: "Home", Href: "/"}, {Label: "Services", Href: "/services"}}
	h.pages.HTML(w, r, http.StatusOK, "services", meta, crumbs, ListData{Groups: groups})
}

func (h *Handler) detailPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	detail, err := h.svc.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.pages.Error(w, r, http.StatusNotFound, "We could not find that service.")
			return
		}
		h.loggerFrom(r.Context()).Error("get service failed", zap.String("slug", slug), zap.Error(err))
		h.pages.Error(w, r, http.StatusInternalServerError, "Something went wrong loading this service.")
		return
	}

	item := detail.Item
	meta := h.pages.Meta(item.Name+" | 1031 Exchange "+h.pages.Site().PrimaryCity(), item.Short, item.Route)
	crumbs := []render.Crumb{
		{Label: "Home", Href: "/"},
		{Label: "Services", Href: "/services"},
		{Label: item.Name, Href: item.Route},
	}
	h.pages.HTML(w, r, http.StatusOK, "service", meta, crumbs, DetailData{
		Item:    item,
		Body:    template.HTML(detail.HTML), //nolint:gosec
		Related: detail.Related,
	})
}

func (h *Handler) listJSON(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		h.writeProblem(w, r, listOperation, err)
		return
	}
	problem.WriteJSON(w, http.StatusOK, struct {
		Items []catalog.ServiceItem `json:"items"`
	}{Items: items})
}

func (h *Handler) getJSON(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeProblem(w, r, getOperation, err)
		return
	}
	problem.WriteJSON(w, http.StatusOK, detail.Item)
}

func (h *Handler) writeProblem(w http.ResponseWriter, r *http.Request, op operation, err error) {
	logger := h.loggerFrom(r.Context())
	fields := []zap.Field{zap.String("operation", string(op)), zap.Error(err)}

	if errors.Is(err, service.ErrNotFound) {
		logger.Info("service not found", fields...)
		problem.Write(w, problem.New(http.StatusNotFound, "Resource not found", "service not found", problem.TypeNotFound, nil))
		return
	}

	logger.Error("services operation failed", fields...)
	problem.Write(w, problem.New(http.StatusInternalServerError, "Internal server error", "an unexpected error occurred", problem.TypeInternal, nil))
}

func (h *Handler) loggerFrom(ctx context.Context) *zap.Logger {
	if logger, ok := platformlogging.FromContext(ctx); ok {
		return logger
	}
	return h.logger
}
