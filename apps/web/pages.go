package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	inventoryservice "github.com/exchangedesk/fortworth1031/domains/inventory/be/service"
	locationsservice "github.com/exchangedesk/fortworth1031/domains/locations/be/service"
	servicesservice "github.com/exchangedesk/fortworth1031/domains/services/be/service"
	toolsservice "github.com/exchangedesk/fortworth1031/domains/tools/be/service"
	"github.com/exchangedesk/fortworth1031/platform/go/catalog"
	"github.com/exchangedesk/fortworth1031/platform/go/render"
	"github.com/exchangedesk/fortworth1031/platform/go/site"
)

var staticPaths = []string{"/", "/locations", "/services", "/inventory", "/tools", "/contact"}

type homeHandler struct {
	locations locationsservice.Service
	services  servicesservice.Service
	inventory inventoryservice.Service
	pages     *render.Renderer
	logger    *zap.Logger
}

// HomeData feeds the home page.
type HomeData struct {
	Locations     []catalog.LocationItem
	ServiceGroups []servicesservice.Group
	Spotlights    []catalog.Spotlight
}

func (h *homeHandler) page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	locations, err := h.locations.Preview(ctx, homeLocations)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	groups, err := h.services.ByCategory(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	overview, err := h.inventory.Overview(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	info := h.pages.Site()
	meta := h.pages.Meta(
		"1031 Exchange "+info.PrimaryCity()+" | Qualified Intermediary and Replacement Property",
		"1031 exchange coordination, replacement property identification and deadline support for investors in "+info.PrimaryCity()+", "+info.StateAbbr()+".",
		"/",
	)
	h.pages.HTML(w, r, http.StatusOK, "home", meta, nil, HomeData{
		Locations:     locations,
		ServiceGroups: groups,
		Spotlights:    overview.Spotlights,
	})
}

func (h *homeHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("render home failed", zap.Error(err))
	h.pages.Error(w, r, http.StatusInternalServerError, "Something went wrong loading this page.")
}

type seoHandler struct {
	site      site.Info
	catalog   *catalog.Holder
	inventory inventoryservice.Service
	tools     toolsservice.Service
	lastMod   time.Time
	logger    *zap.Logger
}

// paths lists every public page: static routes, then content routes.
func (h *seoHandler) paths(r *http.Request) ([]string, error) {
	snapshot := h.catalog.Current()
	out := append([]string(nil), staticPaths...)

	for _, l := range snapshot.Locations() {
		out = append(out, l.Route)
	}
	for _, s := range snapshot.Services() {
		out = append(out, s.Route)
	}
	for _, slug := range h.inventory.StaticSlugs() {
		out = append(out, catalog.InventoryRoute(slug))
	}

	tools, err := h.tools.List(r.Context())
	if err != nil {
		return nil, err
	}
	for _, t := range tools {
		out = append(out, t.Route)
	}
	return out, nil
}

func (h *seoHandler) sitemap(w http.ResponseWriter, r *http.Request) {
	paths, err := h.paths(r)
	if err != nil {
		h.logger.Error("collect sitemap paths failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	body, err := render.Sitemap(h.site, paths, h.lastMod)
	if err != nil {
		h.logger.Error("render sitemap failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *seoHandler) robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(render.Robots(h.site, "/api/", "/docs"))
}
