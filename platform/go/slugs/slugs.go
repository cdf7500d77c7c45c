package slugs

import (
	"errors"
	"fmt"
	"regexp"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// aliases maps misspelled slugs that shipped in content to the slug used for names and images.
var aliases = map[string]string{
	"halton-city": "haltom-city",
}

// Check explains why slug cannot be used in a route, or returns nil.
func Check(slug string) error {
	switch {
	case slug == "":
		return errors.New("slug is required")
	case !slugPattern.MatchString(slug):
		return fmt.Errorf("slug %q must be lowercase letters and digits joined by single hyphens", slug)
	}
	return nil
}

// Valid reports whether slug is already in canonical form.
func Valid(slug string) bool {
	return slugPattern.MatchString(slug)
}

// Canonical resolves known aliases. Unknown slugs are returned unchanged.
func Canonical(slug string) string {
	if target, ok := aliases[slug]; ok {
		return target
	}
	return slug
}
