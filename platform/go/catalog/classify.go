package catalog

import "strings"

// LocationType groups locations for navigation.
type LocationType string

const (
	City     LocationType = "city"
	District LocationType = "district"
	Suburb   LocationType = "suburb"
	Remote   LocationType = "remote"
)

// ServiceCategory groups services for navigation.
type ServiceCategory string

const (
	Structures    ServiceCategory = "Structures"
	PropertyPaths ServiceCategory = "Property Paths"
	Reporting     ServiceCategory = "Reporting"
	Tax           ServiceCategory = "Tax"
	Education     ServiceCategory = "Education"
	Timelines     ServiceCategory = "Timelines"
)

// ServiceCategories lists every category in display order.
var ServiceCategories = []ServiceCategory{Structures, PropertyPaths, Reporting, Tax, Education, Timelines}

type locationRule struct {
	typ   LocationType
	match func(slug string) bool
}

// First match wins.
var locationRules = []locationRule{
	{typ: District, match: containsAny("downtown", "district", "southside", "7th", "stockyards", "clearfork")},
	{typ: Remote, match: func(slug string) bool { return slug == "remote" }},
	{typ: Suburb, match: containsAny("benbrook", "ridglea")},
}

type serviceRule struct {
	category ServiceCategory
	match    func(slug string) bool
}

// First match wins. "exchange" slugs that mention property are identification work.
var serviceRules = []serviceRule{
	{category: Structures, match: func(slug string) bool {
		return strings.Contains(slug, "exchange") && !strings.Contains(slug, "property")
	}},
	{category: PropertyPaths, match: containsAny("identification", "property")},
	{category: Reporting, match: containsAny("reporting", "documentation")},
	{category: Tax, match: containsAny("tax", "boot", "depreciation")},
	{category: Education, match: containsAny("education", "consultation")},
	{category: Timelines, match: containsAny("timeline", "deadline")},
}

// ClassifyLocation derives the location type from slug substrings, defaulting to City.
func ClassifyLocation(slug string) LocationType {
	for _, rule := range locationRules {
		if rule.match(slug) {
			return rule.typ
		}
	}
	return City
}

// ClassifyService derives the service category from slug substrings, defaulting to Property Paths.
func ClassifyService(slug string) ServiceCategory {
	for _, rule := range serviceRules {
		if rule.match(slug) {
			return rule.category
		}
	}
	return PropertyPaths
}

func containsAny(needles ...string) func(string) bool {
	return func(slug string) bool {
		for _, n := range needles {
			if strings.Contains(slug, n) {
				return true
			}
		}
		return false
	}
}
