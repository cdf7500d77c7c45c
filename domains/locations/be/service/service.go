package service

import (
	"context"
	"errors"
	"strings"

	"github.com/exchangedesk/fortworth1031/platform/go/catalog"
	"github.com/exchangedesk/fortworth1031/platform/go/slugs"
)

// ErrNotFound is returned when no location has the requested slug.
var ErrNotFound = errors.New("location not found")

const relatedServices = 6

// Source yields the catalog snapshot to read from.
type Source interface {
	Current() *catalog.Catalog
}

// Detail is a location page: the normalized item, the authored HTML body and a
// handful of services to link to.
type Detail struct {
	Item     catalog.LocationItem
	HTML     string
	Services []catalog.ServiceItem
}

// Service exposes the locations domain operations.
type Service interface {
	List(ctx context.Context, query string) ([]catalog.LocationItem, error)
	Get(ctx context.Context, slug string) (Detail, error)
	Preview(ctx context.Context, n int) ([]catalog.LocationItem, error)
}

type service struct {
	source Source
}

// New builds a locations Service over the given catalog source.
func New(source Source) Service {
	if source == nil {
		panic("catalog source is required")
	}
	return &service{source: source}
}

// List filters the directory by a case-insensitive substring of the trimmed query.
func (s *service) List(ctx context.Context, query string) ([]catalog.LocationItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all := s.source.Current().DirectoryLocations()
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return all, nil
	}

	out := make([]catalog.LocationItem, 0, len(all))
	for _, l := range all {
		if strings.Contains(strings.ToLower(l.Name), needle) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, slug string) (Detail, error) {
	if err := ctx.Err(); err != nil {
		return Detail{}, err
	}
	if !slugs.Valid(slug) {
		return Detail{}, ErrNotFound
	}

	snapshot := s.source.Current()
	item, ok := snapshot.Location(slug)
	if !ok {
		return Detail{}, ErrNotFound
	}

	detail := Detail{Item: item}
	if record, ok := snapshot.LocationRecord(slug); ok {
		detail.HTML, _ = record.MainDescription()
	}

	services := snapshot.Services()
	if len(services) > relatedServices {
		services = services[:relatedServices]
	}
	detail.Services = services
	return detail, nil
}

// Preview returns the first n directory locations.
func (s *service) Preview(ctx context.Context, n int) ([]catalog.LocationItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return []catalog.LocationItem{}, nil
	}

	all := s.source.Current().DirectoryLocations()
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}
