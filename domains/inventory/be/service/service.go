package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/exchangedesk/fortworth1031/platform/go/catalog"
	"github.com/exchangedesk/fortworth1031/platform/go/slugs"
)

// ErrNotFound is returned when a slug is neither a category nor a property type.
var ErrNotFound = errors.New("inventory page not found")

const relatedCategoryLimit = 6

// Source yields the catalog snapshot to read spotlights from.
type Source interface {
	Current() *catalog.Catalog
}

// Overview is the inventory index.
type Overview struct {
	Spotlights    []catalog.Spotlight         `json:"spotlights"`
	Categories    []catalog.InventoryCategory `json:"categories"`
	PropertyTypes []catalog.PropertyType      `json:"propertyTypes"`
}

// Page is a single category or property type page. Description holds the
// category note, or a generated sentence when neither a note nor spotlight
// copy exists.
type Page struct {
	Slug                 string
	Name                 string
	Route                string
	IsCategory           bool
	HeroImage            string
	Description          string
	SpotlightCopy        string
	MetaDescription      string
	Spotlight            *catalog.Spotlight
	RelatedPropertyTypes []catalog.PropertyType
	RelatedCategories    []catalog.InventoryCategory
}

// Service exposes the inventory domain operations.
type Service interface {
	Overview(ctx context.Context) (Overview, error)
	Page(ctx context.Context, slug string) (Page, error)
	StaticSlugs() []string
}

type service struct {
	source Source
	city   string
	state  string
}

// New builds an inventory Service. city and state appear in generated descriptions.
func New(source Source, city, state string) Service {
	if source == nil {
		panic("catalog source is required")
	}
	return &service{source: source, city: city, state: state}
}

func (s *service) Overview(ctx context.Context) (Overview, error) {
	if err := ctx.Err(); err != nil {
		return Overview{}, err
	}
	return Overview{
		Spotlights:    s.source.Current().Spotlights(),
		Categories:    catalog.InventoryCategories(),
		PropertyTypes: catalog.PropertyTypes(),
	}, nil
}

// Page looks the slug up as a category first, then as a property type.
func (s *service) Page(ctx context.Context, slug string) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	if !slugs.Valid(slug) {
		return Page{}, ErrNotFound
	}

	var page Page
	if category, ok := findCategory(slug); ok {
		page = Page{
			Slug:                 category.Slug,
			Name:                 category.Name,
			Route:                category.Route,
			IsCategory:           true,
			HeroImage:            category.HeroImage,
			RelatedPropertyTypes: relatedPropertyTypes(category.Slug),
		}
		page.Description = category.Note
		page.MetaDescription = category.Note
	} else if pt, ok := findPropertyType(slug); ok {
		page = Page{Slug: pt.Slug, Name: pt.Name, Route: pt.Route}
	} else {
		return Page{}, ErrNotFound
	}

	if spot, ok := s.source.Current().Spotlight(slug); ok {
		page.Spotlight = &spot
		page.SpotlightCopy = spot.Copy
	}

	lowerName := strings.ToLower(page.Name)
	if page.Description == "" && page.SpotlightCopy == "" {
		page.Description = fmt.Sprintf(
			"Browse %s properties suitable for 1031 exchange replacement property identification in %s, %s and nationwide.",
			lowerName, s.city, s.state,
		)
	}
	if page.MetaDescription == "" {
		page.MetaDescription = fmt.Sprintf("Browse %s properties for 1031 exchange replacement property identification.", lowerName)
	}

	for _, c := range catalog.InventoryCategories() {
		if len(page.RelatedCategories) == relatedCategoryLimit {
			break
		}
		if c.Slug != slug {
			page.RelatedCategories = append(page.RelatedCategories, c)
		}
	}
	return page, nil
}

// StaticSlugs lists category slugs followed by property type slugs.
func (s *service) StaticSlugs() []string {
	categories := catalog.InventoryCategories()
	types := catalog.PropertyTypes()

	out := make([]string, 0, len(categories)+len(types))
	for _, c := range categories {
		out = append(out, c.Slug)
	}
	for _, pt := range types {
		out = append(out, pt.Slug)
	}
	return out
}

func findCategory(slug string) (catalog.InventoryCategory, bool) {
	for _, c := range catalog.InventoryCategories() {
		if c.Slug == slug {
			return c, true
		}
	}
	return catalog.InventoryCategory{}, false
}

func findPropertyType(slug string) (catalog.PropertyType, bool) {
	for _, pt := range catalog.PropertyTypes() {
		if pt.Slug == slug {
			return pt, true
		}
	}
	return catalog.PropertyType{}, false
}

// relatedPropertyTypes keeps property type display order, not map order.
func relatedPropertyTypes(category string) []catalog.PropertyType {
	members := make(map[string]struct{})
	for _, slug := range catalog.CategoryPropertyTypes(category) {
		members[slug] = struct{}{}
	}

	var out []catalog.PropertyType
	for _, pt := range catalog.PropertyTypes() {
		if _, ok := members[pt.Slug]; ok {
			out = append(out, pt)
		}
	}
	return out
}
