package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/exchangedesk/fortworth1031/domains/inventory/be/service"
	platformlogging "github.com/exchangedesk/fortworth1031/platform/go/logging"
	"github.com/exchangedesk/fortworth1031/platform/go/problem"
	"github.com/exchangedesk/fortworth1031/platform/go/render"
)

// Handler serves the inventory pages and the inventory JSON API.
type Handler struct {
	svc    service.Service
	pages  *render.Renderer
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, pages *render.Renderer, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("inventory service is required")
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
	r.Get("/inventory", h.overviewPage)
	r.Get("/inventory/{slug}", h.itemPage)
}

func (h *Handler) APIRoutes(r chi.Router) {
	r.Get("/inventory", h.overviewJSON)
}

func (h *Handler) overviewPage(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.Overview(r.Context())
	if err != nil {
		h.loggerFrom(r.Context()).Error("load inventory failed", zap.Error(err))
		h.pages.Error(w, r, http.StatusInternalServerError, "Something went wrong loading inventory.")
		return
	}

	info := h.pages.Site()
	meta := h.pages.Meta(
		"1031 Exchange Property Inventory | "+info.PrimaryCity()+", "+info.StateAbbr(),
		"Browse replacement property types suitable for 1031 exchanges, from NNN retail to medical and industrial.",
		"/inventory",
	)
	crumbs := []render.Crumb{{Label: "Home", Href: "/"}, {Label: "Inventory", Href: "/inventory"}}
	h.pages.HTML(w, r, http.StatusOK, "inventory", meta, crumbs, overview)
}

func (h *Handler) itemPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	page, err := h.svc.Page(r.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.pages.Error(w, r, http.StatusNotFound, "We could not find that property type.")
			return
		}
		h.loggerFrom(r.Context()).Error("load inventory page failed", zap.String("slug", slug), zap.Error(err))
		h.pages.Error(w, r, http.StatusInternalServerError, "Something went wrong loading this page.")
		return
	}

	meta := h.pages.Meta(page.Name+" | 1031 Exchange Inventory", page.MetaDescription, page.Route)
	crumbs := []render.Crumb{
		{Label: "Home", Href: "/"},
		{Label: "Inventory", Href: "/inventory"},
		{Label: page.Name, Href: page.Route},
	}
	h.pages.HTML(w, r, http.StatusOK, "inventory_item", meta, crumbs, page)
}

func (h *Handler) overviewJSON(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.Overview(r.Context())
	if err != nil {
		h.loggerFrom(r.Context()).Error("inventory operation failed", zap.String("operation", "getInventory"), zap.Error(err))
		problem.Write(w, problem.New(http.StatusInternalServerError, "Internal server error", "an unexpected error occurred", problem.TypeInternal, nil))
		return
	}
	problem.WriteJSON(w, http.StatusOK, overview)
}

func (h *Handler) loggerFrom(ctx context.Context) *zap.Logger {
	if logger, ok := platformlogging.FromContext(ctx); ok {
		return logger
	}
	return h.logger
}
