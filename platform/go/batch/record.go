// Package batch loads hand-authored content partitions and merges them into
// slug-keyed collections where the last partition to define a slug wins.
package batch

// Entity names a content family stored under batches/<entity>/.
type Entity string

const (
	Locations Entity = "locations"
	Services  Entity = "services"
	Inventory Entity = "inventory"
)

// MainDescriptionField holds the HTML body of a record.
const MainDescriptionField = "mainDescription"

// Record is a raw content record. Fields are untyped and passed through verbatim.
type Record map[string]any

// String returns the field as a string when it is present and of string type.
func (r Record) String(field string) (string, bool) {
	v, ok := r[field]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// MainDescription returns the HTML description when it is a non-empty string.
// A whitespace-only value still counts as present.
func (r Record) MainDescription() (string, bool) {
	s, ok := r.String(MainDescriptionField)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Partition is one authored batch: an ordered slug -> record map.
type Partition struct {
	Name    string
	slugs   []string
	records map[string]Record
}

// NewPartition returns an empty partition.
func NewPartition(name string) *Partition {
	return &Partition{Name: name, records: make(map[string]Record)}
}

// Put adds or replaces a record. Replacing keeps the slug's original position.
func (p *Partition) Put(slug string, record Record) {
	if p.records == nil {
		p.records = make(map[string]Record)
	}
	if _, exists := p.records[slug]; !exists {
		p.slugs = append(p.slugs, slug)
	}
	p.records[slug] = record
}

// Slugs returns the slugs in authored order.
func (p *Partition) Slugs() []string {
	return append([]string(nil), p.slugs...)
}

// Get returns the record stored for slug.
func (p *Partition) Get(slug string) (Record, bool) {
	r, ok := p.records[slug]
	return r, ok
}

// Len reports the number of records.
func (p *Partition) Len() int {
	return len(p.slugs)
}

// ListPartition is an authored batch of records without slug keys.
type ListPartition struct {
	Name  string
	Items []Record
}
