package batch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/exchangedesk/fortworth1031/platform/go/slugs"
)

const schemaSuffix = ".schema.json"

// Issue is a record that does not match its entity schema.
type Issue struct {
	Entity    Entity
	Partition string
	Slug      string
	Err       error
}

func (i Issue) String() string {
	return fmt.Sprintf("%s/%s[%s]: %v", i.Entity, i.Partition, i.Slug, i.Err)
}

// SchemaSet validates records against per-entity JSON Schemas named <entity>.schema.json.
type SchemaSet struct {
	mu      sync.RWMutex
	sources map[Entity][]byte
	cache   map[Entity]*jsonschema.Schema
}

// LoadSchemas reads every <entity>.schema.json file in dir.
func LoadSchemas(fsys fs.FS, dir string) (*SchemaSet, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read schema dir %q: %w", dir, err)
	}

	set := &SchemaSet{
		sources: make(map[Entity][]byte),
		cache:   make(map[Entity]*jsonschema.Schema),
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), schemaSuffix) {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", entry.Name(), err)
		}
		entity := Entity(strings.TrimSuffix(entry.Name(), schemaSuffix))
		set.sources[entity] = data
		if _, err := set.compiled(entity); err != nil {
			return nil, err
		}
	}

	return set, nil
}

// ValidateRecord checks one record. Entities without a schema always pass.
func (s *SchemaSet) ValidateRecord(entity Entity, record Record) error {
	compiled, err := s.compiled(entity)
	if err != nil || compiled == nil {
		return err
	}

	// Round-trip through JSON so YAML decoded integers and nested maps use JSON types.
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	var document any
	if err := json.Unmarshal(raw, &document); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}

	if err := compiled.Validate(document); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}

// Validate checks every record in store and returns the failures in load order.
func (s *SchemaSet) Validate(store *Store) []Issue {
	var issues []Issue
	for _, entity := range store.Entities() {
		for _, p := range store.Partitions(entity) {
			for _, slug := range p.slugs {
				if err := slugs.Check(slug); err != nil {
					issues = append(issues, Issue{Entity: entity, Partition: p.Name, Slug: slug, Err: err})
				}
				if err := s.ValidateRecord(entity, p.records[slug]); err != nil {
					issues = append(issues, Issue{Entity: entity, Partition: p.Name, Slug: slug, Err: err})
				}
			}
		}
		for _, l := range store.Lists(entity) {
			for idx, item := range l.Items {
				if err := s.ValidateRecord(entity, item); err != nil {
					issues = append(issues, Issue{Entity: entity, Partition: l.Name, Slug: fmt.Sprintf("#%d", idx), Err: err})
				}
			}
		}
	}
	return issues
}

func (s *SchemaSet) compiled(entity Entity) (*jsonschema.Schema, error) {
	if s == nil {
		return nil, nil
	}

	s.mu.RLock()
	compiled, ok := s.cache[entity]
	source, hasSource := s.sources[entity]
	s.mu.RUnlock()
	if ok || !hasSource {
		return compiled, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if compiled, ok = s.cache[entity]; ok {
		return compiled, nil
	}

	key := fmt.Sprintf("memory://content/%s%s", entity, schemaSuffix)
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(key, bytes.NewReader(source)); err != nil {
		return nil, fmt.Errorf("register schema %s: %w", key, err)
	}
	compiled, err := compiler.Compile(key)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", key, err)
	}

	s.cache[entity] = compiled
	return compiled, nil
}
