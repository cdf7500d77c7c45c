package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/exchangedesk/fortworth1031/domains/tools/be/service"
	"github.com/exchangedesk/fortworth1031/platform/go/catalog"
	"github.com/exchangedesk/fortworth1031/platform/go/render"
)

// Handler serves the tool pages.
type Handler struct {
	svc    service.Service
	pages  *render.Renderer
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, pages *render.Renderer, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("tools service is required")
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
	r.Get("/tools", h.listPage)
	r.Get("/tools/{slug}", h.toolPage)
}

// ListData feeds the tools index.
type ListData struct {
	Items []catalog.Tool
}

// ToolData feeds a tool page. Result is nil until the form has been submitted.
type ToolData struct {
	Tool       catalog.Tool
	Disclaimer string
	Form       url.Values
	Result     any
	Errors     []string
}

func (h *Handler) listPage(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("list tools failed", zap.Error(err))
		h.pages.Error(w, r, http.StatusInternalServerError, "Something went wrong loading tools.")
		return
	}

	info := h.pages.Site()
	meta := h.pages.Meta(
		"1031 Exchange Tools | "+info.PrimaryCity()+", "+info.StateAbbr(),
		"Calculators and checklists for 1031 exchange deadlines, boot and replacement property identification.",
		"/tools",
	)
	crumbs := []render.Crumb{{Label: "Home", Href: "/"}, {Label: "Tools", Href: "/tools"}}
	h.pages.HTML(w, r, http.StatusOK, "tools", meta, crumbs, ListData{Items: items})
}

func (h *Handler) toolPage(w http.ResponseWriter, r *http.Request) {
	tool, err := h.svc.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.pages.Error(w, r, http.StatusNotFound, "We could not find that tool.")
			return
		}
		h.logger.Error("get tool failed", zap.Error(err))
		h.pages.Error(w, r, http.StatusInternalServerError, "Something went wrong loading this tool.")
		return
	}

	data := ToolData{Tool: tool, Disclaimer: service.Disclaimer, Form: r.URL.Query()}
	status := http.StatusOK
	if submitted(data.Form) {
		result, err := h.calculate(tool.Slug, data.Form)
		var validation *service.ValidationError
		switch {
		case errors.As(err, &validation):
			data.Errors = validation.Messages()
			status = http.StatusBadRequest
		case err != nil:
			h.logger.Error("tool calculation failed", zap.String("tool", tool.Slug), zap.Error(err))
			h.pages.Error(w, r, http.StatusInternalServerError, "Something went wrong running this tool.")
			return
		default:
			data.Result = result
		}
	}

	meta := h.pages.Meta(tool.Name+" | 1031 Exchange "+h.pages.Site().PrimaryCity(), tool.Description, tool.Route)
	crumbs := []render.Crumb{
		{Label: "Home", Href: "/"},
		{Label: "Tools", Href: "/tools"},
		{Label: tool.Name, Href: tool.Route},
	}
	h.pages.HTML(w, r, status, "tool", meta, crumbs, data)
}
