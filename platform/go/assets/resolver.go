// Package assets maps content slugs to static image paths and serves the
// image files from a local directory or a Cloud Storage bucket.
package assets

import (
	"fmt"

	"github.com/exchangedesk/fortworth1031/platform/go/slugs"
)

var locationExtensions = map[string]string{
	"allen":                "jpg",
	"arlington":            "jpg",
	"bedford":              "webp",
	"carrollton":           "jpeg",
	"colleyville":          "jpeg",
	"coppell":              "jpg",
	"dallas":               "jpg",
	"denton":               "png",
	"euless":               "jpg",
	"flower-mound":         "jpg",
	"fort-worth":           "jpg",
	"frisco":               "jpeg",
	"garland":              "jpg",
	"grand-prairie":        "jpg",
	"grapevine":            "jpg",
	"haltom-city":          "jpg",
	"hurst":                "jpg",
	"irving":               "webp",
	"keller":               "jpg",
	"lake-worth":           "jpg",
	"lewisville":           "png",
	"mckinney":             "jpeg",
	"mesquite":             "jpg",
	"north-richland-hills": "jpg",
	"plano":                "jpg",
	"richardson":           "jpeg",
	"river-oaks":           "jpg",
	"saginaw":              "jpg",
	"sansom-park":          "jpg",
	"southlake":            "jpg",
	"watauga":              "jpg",
	"westworth-village":    "jpg",
	"white-settlement":     "jpg",
}

// Resolver builds /{dir}/1031-exchange-{slug}-tx.{ext} paths for slugs with a known extension.
type Resolver struct {
	dir        string
	extensions map[string]string
}

// NewResolver copies extensions so later changes by the caller do not leak in.
func NewResolver(dir string, extensions map[string]string) *Resolver {
	copied := make(map[string]string, len(extensions))
	for slug, ext := range extensions {
		copied[slug] = ext
	}
	return &Resolver{dir: dir, extensions: copied}
}

// LocationResolver resolves hero images for location pages.
func LocationResolver() *Resolver {
	return NewResolver("locations", locationExtensions)
}

// Resolve returns the public image path for slug, or false when no image exists.
func (r *Resolver) Resolve(slug string) (string, bool) {
	canonical := slugs.Canonical(slug)
	ext, ok := r.extensions[canonical]
	if !ok {
		return "", false
	}
	return fmt.Sprintf("/%s/1031-exchange-%s-tx.%s", r.dir, canonical, ext), true
}
