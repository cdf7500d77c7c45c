package batch

import "sort"

// Store holds every loaded partition grouped by entity, in partition order.
type Store struct {
	partitions map[Entity][]*Partition
	lists      map[Entity][]ListPartition
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		partitions: make(map[Entity][]*Partition),
		lists:      make(map[Entity][]ListPartition),
	}
}

// AddPartition appends a keyed partition to the entity.
func (s *Store) AddPartition(entity Entity, p *Partition) {
	s.partitions[entity] = append(s.partitions[entity], p)
}

// AddList appends a list partition to the entity.
func (s *Store) AddList(entity Entity, l ListPartition) {
	s.lists[entity] = append(s.lists[entity], l)
}

// Partitions returns the keyed partitions of entity in merge order.
func (s *Store) Partitions(entity Entity) []*Partition {
	if s == nil {
		return nil
	}
	return append([]*Partition(nil), s.partitions[entity]...)
}

// Lists returns the list partitions of entity in load order.
func (s *Store) Lists(entity Entity) []ListPartition {
	if s == nil {
		return nil
	}
	return append([]ListPartition(nil), s.lists[entity]...)
}

// Items concatenates the items of every list partition of entity.
func (s *Store) Items(entity Entity) []Record {
	var items []Record
	for _, l := range s.Lists(entity) {
		items = append(items, l.Items...)
	}
	return items
}

// Merged merges the keyed partitions of entity.
func (s *Store) Merged(entity Entity) (*Collection, []Duplicate) {
	return Merge(s.Partitions(entity))
}

// Entities lists every entity with at least one partition, sorted by name.
func (s *Store) Entities() []Entity {
	if s == nil {
		return nil
	}
	seen := make(map[Entity]struct{})
	for e := range s.partitions {
		seen[e] = struct{}{}
	}
	for e := range s.lists {
		seen[e] = struct{}{}
	}
	out := make([]Entity, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
