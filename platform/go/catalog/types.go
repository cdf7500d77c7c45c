package catalog

// LocationItem is the normalized view of a location record.
type LocationItem struct {
	Slug        string       `json:"slug"`
	Name        string       `json:"name"`
	Route       string       `json:"route"`
	Type        LocationType `json:"type"`
	Description string       `json:"description"`
	HeroImage   string       `json:"heroImage,omitempty"`
}

// ServiceItem is the normalized view of a service record.
type ServiceItem struct {
	Slug     string          `json:"slug"`
	Name     string          `json:"name"`
	Short    string          `json:"short"`
	Route    string          `json:"route"`
	Category ServiceCategory `json:"category"`
}

// Spotlight is an inventory highlight. Fields are passed through from content.
type Spotlight struct {
	Type     string `json:"type"`
	Href     string `json:"href"`
	Title    string `json:"title"`
	Copy     string `json:"copy"`
	CTALabel string `json:"ctaLabel,omitempty"`
	Note     string `json:"note,omitempty"`
}

// LocationRoute is the public page of a location.
func LocationRoute(slug string) string { return "/locations/" + slug }

// ServiceRoute is the public page of a service.
func ServiceRoute(slug string) string { return "/services/" + slug }

// MergeWithOverride returns the base items whose key is absent from override,
// in base order, followed by every override item in its own order.
func MergeWithOverride[T any](base, override []T, key func(T) string) []T {
	overridden := make(map[string]struct{}, len(override))
	for _, item := range override {
		overridden[key(item)] = struct{}{}
	}

	out := make([]T, 0, len(base)+len(override))
	for _, item := range base {
		if _, ok := overridden[key(item)]; !ok {
			out = append(out, item)
		}
	}
	return append(out, override...)
}

// LocationKey and ServiceKey are key functions for MergeWithOverride.
func LocationKey(l LocationItem) string { return l.Slug }

func ServiceKey(s ServiceItem) string { return s.Slug }
