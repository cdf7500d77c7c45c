package batch

// Duplicate reports a slug defined by more than one partition.
type Duplicate struct {
	Slug     string
	Previous string
	Winner   string
}

// Collection is the merged view of an entity's partitions.
type Collection struct {
	order   []string
	records map[string]Record
}

// Merge folds partitions in order. A later partition replaces the whole record of an
// earlier one for the same slug; the slug keeps the position where it first appeared.
// Duplicates are returned for diagnostics only and never change the result.
func Merge(parts []*Partition) (*Collection, []Duplicate) {
	merged := &Collection{records: make(map[string]Record)}
	owner := make(map[string]string)
	var duplicates []Duplicate

	for _, part := range parts {
		if part == nil {
			continue
		}
		for _, slug := range part.slugs {
			if prev, seen := owner[slug]; seen {
				duplicates = append(duplicates, Duplicate{Slug: slug, Previous: prev, Winner: part.Name})
			} else {
				merged.order = append(merged.order, slug)
			}
			owner[slug] = part.Name
			merged.records[slug] = part.records[slug]
		}
	}

	return merged, duplicates
}

// Get returns the merged record for slug.
func (c *Collection) Get(slug string) (Record, bool) {
	if c == nil {
		return nil, false
	}
	r, ok := c.records[slug]
	return r, ok
}

// Slugs returns the merged slugs in insertion order.
func (c *Collection) Slugs() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.order...)
}

// Len reports the number of distinct slugs.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Each visits records in insertion order.
func (c *Collection) Each(fn func(slug string, record Record)) {
	if c == nil {
		return
	}
	for _, slug := range c.order {
		fn(slug, c.records[slug])
	}
}
