// Package extract derives display names and summaries from authored HTML
// descriptions. Every function degrades to a fallback instead of failing.
package extract

import (
	"regexp"
	"strings"
)

// Rule captures a display name from the first submatch of Pattern.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Clean   func(string) string
}

// Cascade evaluates rules in order; the first rule that captures a non-empty value wins.
type Cascade []Rule

// Match returns the first capture of the cascade.
func (c Cascade) Match(html string) (string, bool) {
	for _, rule := range c {
		m := rule.Pattern.FindStringSubmatch(html)
		if len(m) < 2 {
			continue
		}
		value := strings.TrimSpace(m[1])
		if rule.Clean != nil {
			value = rule.Clean(value)
		}
		if value != "" {
			return value, true
		}
	}
	return "", false
}

// LocationCascade matches "<p>City Name, ST" then "<p>City Name serves|represents|offers".
func LocationCascade(stateAbbr string) Cascade {
	return Cascade{
		{
			Name:    "city-state",
			Pattern: regexp.MustCompile(`<p>([A-Z][a-zA-Z\s-]+), ` + regexp.QuoteMeta(stateAbbr)),
		},
		{
			Name:    "city-verb",
			Pattern: regexp.MustCompile(`<p>([A-Z][a-zA-Z\s-]+) (?:represents|serves|offers)`),
		},
	}
}

var serviceKeywordRule = Rule{
	Name:    "service-keyword",
	Pattern: regexp.MustCompile(`(?i)<p>([A-Z][^<]+(?:Services|Exchange|Identification|Reporting|Documentation|Consultation|Education|Analysis|Planning|Calculation)[^<]*) (?:provide|is|allows|represents|enables|includes)`),
}

var serviceLeadRule = Rule{
	Name:    "service-lead",
	Pattern: regexp.MustCompile(`(?i)<p>([A-Z][^<]{5,80}?) (?:provide|is|allows|represents|enables|includes|are|offer)`),
	Clean:   stripArticle,
}

// ServiceCascade matches a keyword bearing service phrase, then any short lead phrase.
func ServiceCascade() Cascade {
	return Cascade{serviceKeywordRule, serviceLeadRule}
}

func stripArticle(s string) string {
	s = strings.TrimPrefix(s, "A ")
	s = strings.TrimPrefix(s, "An ")
	return s
}
