package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	contacthandler "github.com/exchangedesk/fortworth1031/domains/contact/be/handler"
	contactrepo "github.com/exchangedesk/fortworth1031/domains/contact/be/repo"
	contactservice "github.com/exchangedesk/fortworth1031/domains/contact/be/service"
	inventoryhandler "github.com/exchangedesk/fortworth1031/domains/inventory/be/handler"
	inventoryservice "github.com/exchangedesk/fortworth1031/domains/inventory/be/service"
	locationshandler "github.com/exchangedesk/fortworth1031/domains/locations/be/handler"
	locationsservice "github.com/exchangedesk/fortworth1031/domains/locations/be/service"
	serviceshandler "github.com/exchangedesk/fortworth1031/domains/services/be/handler"
	servicesservice "github.com/exchangedesk/fortworth1031/domains/services/be/service"
	toolshandler "github.com/exchangedesk/fortworth1031/domains/tools/be/handler"
	toolsservice "github.com/exchangedesk/fortworth1031/domains/tools/be/service"
	"github.com/exchangedesk/fortworth1031/platform/go/assets"
	"github.com/exchangedesk/fortworth1031/platform/go/catalog"
	platformlogging "github.com/exchangedesk/fortworth1031/platform/go/logging"
	platformmiddleware "github.com/exchangedesk/fortworth1031/platform/go/middleware"
	"github.com/exchangedesk/fortworth1031/platform/go/notify"
	"github.com/exchangedesk/fortworth1031/platform/go/render"
	"github.com/exchangedesk/fortworth1031/platform/go/site"
)

const (
	navPreview      = 8
	homeLocations   = 12
	pageCacheMaxAge = 5 * time.Minute
)

// routerDeps is everything the HTTP surface needs; main builds it from config.
type routerDeps struct {
	Logger         *zap.Logger
	Site           site.Info
	Catalog        *catalog.Holder
	Leads          contactrepo.Repository
	Notifier       notify.Notifier
	Assets         assets.Backend
	Contract       *openapi3.T
	RequestTimeout time.Duration
	// CORSOrigins limits browser access to the JSON API; empty allows any origin.
	CORSOrigins []string
	// LastModified stamps sitemap entries; zero omits lastmod.
	LastModified time.Time
}

func newRouter(deps routerDeps) (http.Handler, error) {
	if deps.Logger == nil || deps.Catalog == nil || deps.Leads == nil || deps.Assets == nil || deps.Contract == nil {
		return nil, errors.New("router dependencies are incomplete")
	}
	logger := deps.Logger
	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	locationService := locationsservice.New(deps.Catalog)
	serviceService := servicesservice.New(deps.Catalog)
	inventoryService := inventoryservice.New(deps.Catalog, deps.Site.PrimaryCity(), deps.Site.StateAbbr())
	toolService := toolsservice.New()
	contactService := contactservice.New(deps.Leads, deps.Notifier, logger)

	pages, err := render.New(deps.Site, navBuilder(locationService, serviceService, logger), logger)
	if err != nil {
		return nil, err
	}

	locationsHTTPHandler := locationshandler.New(locationService, pages, logger)
	servicesHTTPHandler := serviceshandler.New(serviceService, pages, logger)
	inventoryHTTPHandler := inventoryhandler.New(inventoryService, pages, logger)
	toolsHTTPHandler := toolshandler.New(toolService, pages, logger)
	contactHTTPHandler := contacthandler.New(contactService, pages, logger)

	home := &homeHandler{
		locations: locationService,
		services:  serviceService,
		inventory: inventoryService,
		pages:     pages,
		logger:    logger,
	}
	seo := &seoHandler{
		site:      deps.Site,
		catalog:   deps.Catalog,
		inventory: inventoryService,
		tools:     toolService,
		lastMod:   deps.LastModified,
		logger:    logger,
	}

	rootRouter := chi.NewRouter()
	rootRouter.Use(
		chimw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		chimw.Timeout(timeout),
	)
	rootRouter.Use(platformlogging.RequestLogger(logger, "/healthz", "/readyz"))
	rootRouter.Use(platformmiddleware.RequestTrace)
	rootRouter.Use(platformmiddleware.SecurityHeaders)
	rootRouter.Use(assets.Intercept(assets.Handler(deps.Assets, logger)))

	rootRouter.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rootRouter.Get("/readyz", readyHandler(deps.Assets, logger))

	rootRouter.Get("/sitemap.xml", seo.sitemap)
	rootRouter.Get("/robots.txt", seo.robots)

	registerDocsRoutes(rootRouter, deps.Contract, logger)

	rootRouter.Group(func(r chi.Router) {
		r.Use(platformmiddleware.CacheControl(pageCacheMaxAge))
		r.Get("/", home.page)
		locationsHTTPHandler.Routes(r)
		servicesHTTPHandler.Routes(r)
		inventoryHTTPHandler.Routes(r)
		toolsHTTPHandler.Routes(r)
		contactHTTPHandler.Routes(r)
	})

	rootRouter.NotFound(func(w http.ResponseWriter, r *http.Request) {
		pages.Error(w, r, http.StatusNotFound, "We could not find that page.")
	})

	apiRouter := chi.NewRouter()
	cors := platformmiddleware.DefaultCORS()
	if len(deps.CORSOrigins) > 0 {
		cors = platformmiddleware.CORS(deps.CORSOrigins...)
	}
	apiRouter.Use(cors)
	apiRouter.Use(platformmiddleware.ContractValidator(deps.Contract, logger))
	locationsHTTPHandler.APIRoutes(apiRouter)
	servicesHTTPHandler.APIRoutes(apiRouter)
	inventoryHTTPHandler.APIRoutes(apiRouter)
	contactHTTPHandler.APIRoutes(apiRouter)

	rootRouter.Mount("/api/v1", apiRouter)

	return rootRouter, nil
}

// navBuilder reads previews per request so the header follows content reloads.
func navBuilder(locations locationsservice.Service, services servicesservice.Service, logger *zap.Logger) func() render.Nav {
	return func() render.Nav {
		ctx := context.Background()
		var nav render.Nav

		locs, err := locations.Preview(ctx, navPreview)
		if err != nil {
			logger.Warn("build location nav failed", zap.Error(err))
		}
		for _, l := range locs {
			nav.Locations = append(nav.Locations, render.Link{Label: l.Name, Href: l.Route})
		}

		svcs, err := services.Preview(ctx, navPreview)
		if err != nil {
			logger.Warn("build service nav failed", zap.Error(err))
		}
		for _, s := range svcs {
			nav.Services = append(nav.Services, render.Link{Label: s.Name, Href: s.Route})
		}
		return nav
	}
}

func readyHandler(backend assets.Backend, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := backend.Check(r.Context()); err != nil {
			logger.Warn("asset backend not ready", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
