package service

import (
	"context"
	"errors"

	"github.com/exchangedesk/fortworth1031/platform/go/catalog"
	"github.com/exchangedesk/fortworth1031/platform/go/slugs"
)

// ErrNotFound is returned when no service has the requested slug.
var ErrNotFound = errors.New("service not found")

const relatedLimit = 4

// Source yields the catalog snapshot to read from.
type Source interface {
	Current() *catalog.Catalog
}

// Group is one category with its services in merge order.
type Group struct {
	Category catalog.ServiceCategory
	Items    []catalog.ServiceItem
}

// Detail is a service page.
type Detail struct {
	Item    catalog.ServiceItem
	HTML    string
	Related []catalog.ServiceItem
}

// Service exposes the services domain operations.
type Service interface {
	List(ctx context.Context) ([]catalog.ServiceItem, error)
	Get(ctx context.Context, slug string) (Detail, error)
	Preview(ctx context.Context, n int) ([]catalog.ServiceItem, error)
	ByCategory(ctx context.Context) ([]Group, error)
}

type service struct {
	source Source
}

// New builds a services Service over the given catalog source.
func New(source Source) Service {
	if source == nil {
		panic("catalog source is required")
	}
	return &service{source: source}
}

func (s *service) List(ctx context.Context) ([]catalog.ServiceItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.source.Current().Services(), nil
}

// Get returns the service plus up to four others from the same category.
func (s *service) Get(ctx context.Context, slug string) (Detail, error) {
	if err := ctx.Err(); err != nil {
		return Detail{}, err
	}
	if !slugs.Valid(slug) {
		return Detail{}, ErrNotFound
	}

	snapshot := s.source.Current()
	item, ok := snapshot.Service(slug)
	if !ok {
		return Detail{}, ErrNotFound
	}

	detail := Detail{Item: item}
	if record, ok := snapshot.ServiceRecord(slug); ok {
		detail.HTML, _ = record.MainDescription()
	}
	for _, other := range snapshot.Services() {
		if len(detail.Related) == relatedLimit {
			break
		}
		if other.Slug != slug && other.Category == item.Category {
			detail.Related = append(detail.Related, other)
		}
	}
	return detail, nil
}

func (s *service) Preview(ctx context.Context, n int) ([]catalog.ServiceItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return []catalog.ServiceItem{}, nil
	}
	all := s.source.Current().Services()
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// ByCategory groups services in the fixed category order. Empty categories are omitted.
func (s *service) ByCategory(ctx context.Context) ([]Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	byCategory := make(map[catalog.ServiceCategory][]catalog.ServiceItem, len(catalog.ServiceCategories))
	for _, item := range s.source.Current().Services() {
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	groups := make([]Group, 0, len(catalog.ServiceCategories))
	for _, category := range catalog.ServiceCategories {
		if items := byCategory[category]; len(items) > 0 {
			groups = append(groups, Group{Category: category, Items: items})
		}
	}
	return groups, nil
}
