// Package render turns page view models into HTML using the embedded templates.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	platformlogging "github.com/exchangedesk/fortworth1031/platform/go/logging"
	"github.com/exchangedesk/fortworth1031/platform/go/site"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Link is a labelled href used by navigation.
type Link struct {
	Label string
	Href  string
}

// Nav is the header navigation, rebuilt per request so it follows content reloads.
type Nav struct {
	Locations []Link
	Services  []Link
}

// View is what every page template receives.
type View struct {
	Meta           Meta
	Breadcrumbs    []Crumb
	BreadcrumbJSON template.JS
	Site           site.Info
	Nav            Nav
	Year           int
	Data           any
}

// Renderer executes named page templates inside the shared layout.
type Renderer struct {
	pages  map[string]*template.Template
	info   site.Info
	nav    func() Nav
	logger *zap.Logger
	now    func() time.Time
}

// New parses the layout and every page template. nav may be nil.
func New(info site.Info, nav func() Nav, logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if nav == nil {
		nav = func() Nav { return Nav{} }
	}

	funcs := template.FuncMap{
		"lower":   strings.ToLower,
		"inputID": func(field string) string { return site.FormInputIDs[field] },
	}

	base, err := template.New("layout").Funcs(funcs).ParseFS(templateFS, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout: %w", err)
		}
		page, err := clone.ParseFS(templateFS, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		pages[strings.TrimSuffix(path.Base(file), ".html")] = page
	}

	return &Renderer{pages: pages, info: info, nav: nav, logger: logger, now: time.Now}, nil
}

// Site returns the business details the renderer was built with.
func (r *Renderer) Site() site.Info {
	return r.info
}

// Meta is PageMeta bound to the renderer's site.
func (r *Renderer) Meta(title, description, path string) Meta {
	return PageMeta(r.info, title, description, path)
}

// HTML renders page with status. Template failures produce a bare 500.
func (r *Renderer) HTML(w http.ResponseWriter, req *http.Request, status int, page string, meta Meta, crumbs []Crumb, data any) {
	logger := platformlogging.FromRequest(req, r.logger)

	tmpl, ok := r.pages[page]
	if !ok {
		logger.Error("unknown page template", zap.String("page", page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	view := View{
		Meta:        meta,
		Breadcrumbs: crumbs,
		Site:        r.info,
		Nav:         r.nav(),
		Year:        r.now().Year(),
		Data:        data,
	}
	if len(crumbs) > 0 {
		jsonld, err := BreadcrumbJSONLD(r.info, crumbs)
		if err != nil {
			logger.Error("render breadcrumbs failed", zap.Error(err))
		}
		view.BreadcrumbJSON = jsonld
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", view); err != nil {
		logger.Error("render page failed", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// ErrorData feeds the error page.
type ErrorData struct {
	Status  int
	Heading string
	Message string
}

// Error renders the shared error page.
func (r *Renderer) Error(w http.ResponseWriter, req *http.Request, status int, message string) {
	heading := http.StatusText(status)
	if status == http.StatusNotFound {
		heading = "Page not found"
	}
	meta := r.Meta(heading, message, req.URL.Path)
	r.HTML(w, req, status, "error", meta, nil, ErrorData{Status: status, Heading: heading, Message: message})
}
