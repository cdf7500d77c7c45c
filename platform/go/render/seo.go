package render

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/exchangedesk/fortworth1031/platform/go/site"
)

// Meta is the per-page SEO header.
type Meta struct {
	Title       string
	Description string
	Canonical   string
}

// Crumb is one breadcrumb entry.
type Crumb struct {
	Label string
	Href  string
}

// PageMeta builds the title, description and canonical URL for path.
func PageMeta(info site.Info, title, description, path string) Meta {
	return Meta{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Canonical:   info.AbsoluteURL(path),
	}
}

type listItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

type breadcrumbList struct {
	Context string     `json:"@context"`
	Type    string     `json:"@type"`
	Items   []listItem `json:"itemListElement"`
}

// BreadcrumbJSONLD renders crumbs as a schema.org BreadcrumbList with absolute item URLs.
func BreadcrumbJSONLD(info site.Info, crumbs []Crumb) (template.JS, error) {
	list := breadcrumbList{
		Context: "https://schema.org",
		Type:    "BreadcrumbList",
		Items:   make([]listItem, 0, len(crumbs)),
	}
	for i, c := range crumbs {
		list.Items = append(list.Items, listItem{
			Type:     "ListItem",
			Position: i + 1,
			Name:     c.Label,
			Item:     info.AbsoluteURL(c.Href),
		})
	}

	raw, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("marshal breadcrumbs: %w", err)
	}
	return template.JS(raw), nil
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap renders a sitemap.xml for paths. Duplicates are dropped; order is preserved.
func Sitemap(info site.Info, paths []string, lastMod time.Time) ([]byte, error) {
	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	stamp := ""
	if !lastMod.IsZero() {
		stamp = lastMod.UTC().Format("2006-01-02")
	}

	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		set.URLs = append(set.URLs, sitemapURL{Loc: info.AbsoluteURL(p), LastMod: stamp})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// Robots renders robots.txt pointing at the sitemap. disallow paths are sorted.
func Robots(info site.Info, disallow ...string) []byte {
	sorted := append([]string(nil), disallow...)
	sort.Strings(sorted)

	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	for _, p := range sorted {
		b.WriteString("Disallow: " + p + "\n")
	}
	b.WriteString("\nSitemap: " + info.AbsoluteURL("/sitemap.xml") + "\n")
	return []byte(b.String())
}
