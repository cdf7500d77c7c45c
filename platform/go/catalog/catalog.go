// Package catalog turns merged batch records into the normalized location,
// service and spotlight lists that pages and the JSON API read.
package catalog

import (
	"fmt"
	"io/fs"

	"github.com/exchangedesk/fortworth1031/content"
	"github.com/exchangedesk/fortworth1031/platform/go/assets"
	"github.com/exchangedesk/fortworth1031/platform/go/batch"
	"github.com/exchangedesk/fortworth1031/platform/go/extract"
)

// Options carries site constants and optional curated base lists.
type Options struct {
	PrimaryCity string
	StateAbbr   string
	Images      *assets.Resolver
	// BaseLocations and BaseServices are replaced slug by slug by batch content.
	BaseLocations []LocationItem
	BaseServices  []ServiceItem
}

// Duplicate is a slug that more than one partition of Entity defines.
type Duplicate struct {
	Entity batch.Entity
	batch.Duplicate
}

// Catalog is an immutable snapshot. Accessors return copies.
type Catalog struct {
	locations       []LocationItem
	locationIndex   map[string]int
	services        []ServiceItem
	serviceIndex    map[string]int
	spotlights      []Spotlight
	locationRecords *batch.Collection
	serviceRecords  *batch.Collection
	duplicates      []Duplicate
}

// Load reads batch content from fsys and builds a catalog.
func Load(fsys fs.FS, opts Options) (*Catalog, *batch.Store, error) {
	store, err := batch.Load(fsys, content.BatchDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load batches: %w", err)
	}
	return Build(store, opts), store, nil
}

// Build merges the store and derives every list. It never fails: records with
// missing or malformed descriptions fall back to generated text.
func Build(store *batch.Store, opts Options) *Catalog {
	if opts.PrimaryCity == "" {
		opts.PrimaryCity = "Fort Worth"
	}
	if opts.StateAbbr == "" {
		opts.StateAbbr = "TX"
	}
	if opts.Images == nil {
		opts.Images = assets.LocationResolver()
	}

	c := &Catalog{}

	locRecords, locDups := store.Merged(batch.Locations)
	svcRecords, svcDups := store.Merged(batch.Services)
	c.locationRecords = locRecords
	c.serviceRecords = svcRecords
	for _, d := range locDups {
		c.duplicates = append(c.duplicates, Duplicate{Entity: batch.Locations, Duplicate: d})
	}
	for _, d := range svcDups {
		c.duplicates = append(c.duplicates, Duplicate{Entity: batch.Services, Duplicate: d})
	}

	locations := buildLocations(locRecords, opts)
	if len(opts.BaseLocations) > 0 {
		locations = MergeWithOverride(opts.BaseLocations, locations, LocationKey)
	}
	c.locations = locations
	c.locationIndex = indexBy(locations, LocationKey)

	services := buildServices(svcRecords, opts)
	if len(opts.BaseServices) > 0 {
		services = MergeWithOverride(opts.BaseServices, services, ServiceKey)
	}
	c.services = services
	c.serviceIndex = indexBy(services, ServiceKey)

	for _, item := range store.Items(batch.Inventory) {
		c.spotlights = append(c.spotlights, spotlightFrom(item))
	}

	return c
}

func buildLocations(records *batch.Collection, opts Options) []LocationItem {
	names := extract.NewLocationExtractor(opts.StateAbbr)
	items := make([]LocationItem, 0, records.Len())

	records.Each(func(slug string, record batch.Record) {
		html, hasDescription := record.MainDescription()
		name := names.Name(html, slug)

		description := fmt.Sprintf("%s 1031 exchange support. Serving investors in %s, %s.", name, opts.PrimaryCity, opts.StateAbbr)
		if hasDescription {
			description = extract.FirstParagraph(html)
		}

		item := LocationItem{
			Slug:        slug,
			Name:        name,
			Route:       LocationRoute(slug),
			Type:        ClassifyLocation(slug),
			Description: description,
		}
		if image, ok := opts.Images.Resolve(slug); ok {
			item.HeroImage = image
		}
		items = append(items, item)
	})

	return items
}

func buildServices(records *batch.Collection, opts Options) []ServiceItem {
	names := extract.NewServiceExtractor()
	items := make([]ServiceItem, 0, records.Len())

	records.Each(func(slug string, record batch.Record) {
		html, hasDescription := record.MainDescription()

		short := fmt.Sprintf("1031 exchange service for %s, %s.", opts.PrimaryCity, opts.StateAbbr)
		if hasDescription {
			short = extract.FirstParagraph(html)
		}

		items = append(items, ServiceItem{
			Slug:     slug,
			Name:     names.Name(html, slug),
			Short:    extract.Truncate(short, extract.SummaryLimit),
			Route:    ServiceRoute(slug),
			Category: ClassifyService(slug),
		})
	})

	return items
}

func spotlightFrom(record batch.Record) Spotlight {
	field := func(name string) string {
		v, _ := record.String(name)
		return v
	}
	return Spotlight{
		Type:     field("type"),
		Href:     field("href"),
		Title:    field("title"),
		Copy:     field("copy"),
		CTALabel: field("ctaLabel"),
		Note:     field("note"),
	}
}

func indexBy[T any](items []T, key func(T) string) map[string]int {
	idx := make(map[string]int, len(items))
	for i, item := range items {
		idx[key(item)] = i
	}
	return idx
}

// Locations returns every location in merge order.
func (c *Catalog) Locations() []LocationItem {
	return append([]LocationItem(nil), c.locations...)
}

// DirectoryLocations excludes the remote pseudo-location and locations without a hero image.
func (c *Catalog) DirectoryLocations() []LocationItem {
	out := make([]LocationItem, 0, len(c.locations))
	for _, l := range c.locations {
		if l.Slug == "remote" || l.HeroImage == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Location returns the normalized location for slug.
func (c *Catalog) Location(slug string) (LocationItem, bool) {
	i, ok := c.locationIndex[slug]
	if !ok {
		return LocationItem{}, false
	}
	return c.locations[i], true
}

// LocationRecord returns the merged raw record for slug.
func (c *Catalog) LocationRecord(slug string) (batch.Record, bool) {
	return c.locationRecords.Get(slug)
}

// Services returns every service in merge order.
func (c *Catalog) Services() []ServiceItem {
	return append([]ServiceItem(nil), c.services...)
}

// Service returns the normalized service for slug.
func (c *Catalog) Service(slug string) (ServiceItem, bool) {
	i, ok := c.serviceIndex[slug]
	if !ok {
		return ServiceItem{}, false
	}
	return c.services[i], true
}

// ServiceRecord returns the merged raw record for slug.
func (c *Catalog) ServiceRecord(slug string) (batch.Record, bool) {
	return c.serviceRecords.Get(slug)
}

// Spotlights returns the inventory spotlights in authored order.
func (c *Catalog) Spotlights() []Spotlight {
	return append([]Spotlight(nil), c.spotlights...)
}

// Spotlight returns the first spotlight whose type equals typ.
func (c *Catalog) Spotlight(typ string) (Spotlight, bool) {
	for _, s := range c.spotlights {
		if s.Type == typ {
			return s, true
		}
	}
	return Spotlight{}, false
}

// Duplicates lists slugs overridden across partitions.
func (c *Catalog) Duplicates() []Duplicate {
	return append([]Duplicate(nil), c.duplicates...)
}
