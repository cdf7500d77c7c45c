// Package content embeds the site's authored data: batch partitions, entity
// schemas and site settings.
package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
)

// BatchDir and SchemaDir are the roots inside FS.
const (
	BatchDir  = "batches"
	SchemaDir = "schemas"
	SiteFile  = "site.json"
)

//go:embed batches schemas site.json
var embedded embed.FS

// FS returns the embedded content tree.
func FS() fs.FS {
	return embedded
}

// ReadJSON decodes a JSON file from fsys into v.
func ReadJSON(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
