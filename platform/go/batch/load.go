package batch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

type partitionSource struct {
	name  string
	path  string
	isDir bool
}

// Load reads every batches/<entity>/ directory below root.
//
// A partition is a JSON or YAML file holding either a slug keyed object or an
// array of records, or a directory of <slug>.md files with YAML front matter.
// Partitions are merged in lexical name order.
func Load(fsys fs.FS, root string) (*Store, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("read batch root %q: %w", root, err)
	}

	store := NewStore()
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		entity := Entity(entry.Name())
		if err := loadEntity(fsys, path.Join(root, entry.Name()), entity, store); err != nil {
			return nil, err
		}
	}

	return store, nil
}

func loadEntity(fsys fs.FS, dir string, entity Entity, store *Store) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read %s partitions: %w", entity, err)
	}

	sources := make([]partitionSource, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if entry.IsDir() {
			sources = append(sources, partitionSource{name: name, path: path.Join(dir, name), isDir: true})
			continue
		}
		switch path.Ext(name) {
		case ".json", ".yaml", ".yml":
			sources = append(sources, partitionSource{
				name: strings.TrimSuffix(name, path.Ext(name)),
				path: path.Join(dir, name),
			})
		}
	}
	sort.SliceStable(sources, func(i, j int) bool { return sources[i].name < sources[j].name })

	for _, src := range sources {
		if src.isDir {
			p, err := loadMarkdownPartition(fsys, src)
			if err != nil {
				return fmt.Errorf("load %s/%s: %w", entity, src.name, err)
			}
			store.AddPartition(entity, p)
			continue
		}

		data, err := fs.ReadFile(fsys, src.path)
		if err != nil {
			return fmt.Errorf("read %s: %w", src.path, err)
		}

		var (
			p    *Partition
			list *ListPartition
		)
		if path.Ext(src.path) == ".json" {
			p, list, err = decodeJSON(src.name, data)
		} else {
			p, list, err = decodeYAML(src.name, data)
		}
		if err != nil {
			return fmt.Errorf("decode %s: %w", src.path, err)
		}
		if p != nil {
			store.AddPartition(entity, p)
		}
		if list != nil {
			store.AddList(entity, *list)
		}
	}

	return nil
}

func decodeJSON(name string, data []byte) (*Partition, *ListPartition, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return NewPartition(name), nil, nil
		}
		return nil, nil, err
	}

	switch tok {
	case json.Delim('{'):
		p := NewPartition(name)
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, nil, err
			}
			slug, ok := keyTok.(string)
			if !ok {
				return nil, nil, fmt.Errorf("unexpected key token %v", keyTok)
			}
			var record Record
			if err := dec.Decode(&record); err != nil {
				return nil, nil, fmt.Errorf("record %q: %w", slug, err)
			}
			p.Put(slug, record)
		}
		if _, err := dec.Token(); err != nil {
			return nil, nil, err
		}
		return p, nil, nil
	case json.Delim('['):
		list := &ListPartition{Name: name}
		for dec.More() {
			var record Record
			if err := dec.Decode(&record); err != nil {
				return nil, nil, fmt.Errorf("item %d: %w", len(list.Items), err)
			}
			list.Items = append(list.Items, record)
		}
		if _, err := dec.Token(); err != nil {
			return nil, nil, err
		}
		return nil, list, nil
	default:
		return nil, nil, fmt.Errorf("partition must be an object or an array, got %v", tok)
	}
}

func decodeYAML(name string, data []byte) (*Partition, *ListPartition, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}
	if len(doc.Content) == 0 {
		return NewPartition(name), nil, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.MappingNode:
		p := NewPartition(name)
		for i := 0; i+1 < len(root.Content); i += 2 {
			slug := root.Content[i].Value
			var record Record
			if err := root.Content[i+1].Decode(&record); err != nil {
				return nil, nil, fmt.Errorf("record %q: %w", slug, err)
			}
			p.Put(slug, record)
		}
		return p, nil, nil
	case yaml.SequenceNode:
		list := &ListPartition{Name: name}
		for _, node := range root.Content {
			var record Record
			if err := node.Decode(&record); err != nil {
				return nil, nil, fmt.Errorf("item %d: %w", len(list.Items), err)
			}
			list.Items = append(list.Items, record)
		}
		return nil, list, nil
	default:
		return nil, nil, fmt.Errorf("partition must be a mapping or a sequence (line %d)", root.Line)
	}
}

func loadMarkdownPartition(fsys fs.FS, src partitionSource) (*Partition, error) {
	entries, err := fs.ReadDir(fsys, src.path)
	if err != nil {
		return nil, err
	}

	p := NewPartition(src.name)
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".md" {
			continue
		}
		slug := strings.TrimSuffix(entry.Name(), ".md")

		data, err := fs.ReadFile(fsys, path.Join(src.path, entry.Name()))
		if err != nil {
			return nil, err
		}

		record, err := parseMarkdownRecord(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		p.Put(slug, record)
	}

	return p, nil
}

func parseMarkdownRecord(data []byte) (Record, error) {
	record := Record{}
	body, err := frontmatter.Parse(bytes.NewReader(data), &record)
	if err != nil {
		return nil, fmt.Errorf("front matter: %w", err)
	}

	if html, ok := record.MainDescription(); (ok && strings.TrimSpace(html) != "") || len(bytes.TrimSpace(body)) == 0 {
		return record, nil
	}

	var html bytes.Buffer
	if err := markdown.Convert(body, &html); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	record[MainDescriptionField] = strings.TrimSpace(html.String())

	return record, nil
}
