package extract

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/exchangedesk/fortworth1031/platform/go/slugs"
)

var locationNames = map[string]string{
	"fort-worth":           "Fort Worth",
	"north-richland-hills": "North Richland Hills",
	"haltom-city":          "Haltom City",
	"halton-city":          "Haltom City",
	"lake-worth":           "Lake Worth",
	"white-settlement":     "White Settlement",
	"river-oaks":           "River Oaks",
	"sansom-park":          "Sansom Park",
	"westworth-village":    "Westworth Village",
	"flower-mound":         "Flower Mound",
	"grand-prairie":        "Grand Prairie",
}

var serviceNames = map[string]string{
	"forward-exchange":                   "Forward Exchange",
	"reverse-exchange":                   "Reverse Exchange",
	"simultaneous-exchange":              "Simultaneous Exchange",
	"delayed-exchange":                   "Delayed Exchange",
	"build-to-suit-exchange":             "Build To Suit Exchange",
	"improvement-exchange":               "Improvement Exchange",
	"partial-exchange":                   "Partial Exchange",
	"multi-property-exchange":            "Multi Property Exchange",
	"qualified-intermediary-services":    "Qualified Intermediary Services",
	"qualified-escrow-services":          "Qualified Escrow Services",
	"exchange-documentation":             "Exchange Documentation",
	"property-identification":            "Property Identification",
	"tax-basis-calculation":              "Tax Basis Calculation",
	"boot-analysis":                      "Boot Analysis",
	"depreciation-recapture-planning":    "Depreciation Recapture Planning",
	"exchange-reporting":                 "Exchange Reporting",
	"nnn-property-identification":        "NNN Property Identification",
	"retail-property-identification":     "Retail Property Identification",
	"industrial-property-identification": "Industrial Property Identification",
	"medical-property-identification":    "Medical Property Identification",
	"exchange-education":                 "Exchange Education",
	"exchange-consultation":              "Exchange Consultation",
	"investor-resources":                 "Investor Resources",
}

// Extractor resolves display names for one entity family.
type Extractor struct {
	cascade Cascade
	names   map[string]string
}

// NewLocationExtractor builds the location name extractor for a state abbreviation such as "TX".
func NewLocationExtractor(stateAbbr string) *Extractor {
	return &Extractor{cascade: LocationCascade(stateAbbr), names: locationNames}
}

// NewServiceExtractor builds the service name extractor.
func NewServiceExtractor() *Extractor {
	return &Extractor{cascade: ServiceCascade(), names: serviceNames}
}

// Name tries the cascade against html, then the exception table, then title-cases the slug.
func (e *Extractor) Name(html, slug string) string {
	canonical := slugs.Canonical(slug)
	if strings.TrimSpace(html) != "" {
		if name, ok := e.cascade.Match(html); ok {
			return name
		}
	}
	if name, ok := e.names[canonical]; ok {
		return name
	}
	return TitleSlug(canonical)
}

// TitleSlug upper-cases the first character of every hyphen separated token and
// joins the tokens with spaces. The rest of each token is left untouched.
func TitleSlug(slug string) string {
	tokens := strings.Split(slug, "-")
	upper := cases.Upper(language.Und)
	for i, tok := range tokens {
		if tok == "" {
			continue
		}
		first, rest := splitFirstRune(tok)
		tokens[i] = upper.String(first) + rest
	}
	return strings.Join(tokens, " ")
}

func splitFirstRune(s string) (string, string) {
	for i := range s {
		if i > 0 {
			return s[:i], s[i:]
		}
	}
	return s, ""
}
