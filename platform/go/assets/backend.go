package assets

import (
	"context"
	"errors"
	"io"
	"mime"
	"path"
	"strings"
	"time"
)

// ErrObjectNotFound is returned when a key does not exist in the backend.
var ErrObjectNotFound = errors.New("asset not found")

// ObjectInfo describes a stored asset.
type ObjectInfo struct {
	ContentType string
	Size        int64
	ModTime     time.Time
}

// Backend reads static assets by key, e.g. "locations/1031-exchange-plano-tx.jpg".
type Backend interface {
	Open(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Check(ctx context.Context) error
}

func cleanKey(key string) (string, bool) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" {
		return "", false
	}
	cleaned := path.Clean(key)
	if cleaned != key || strings.HasPrefix(cleaned, "..") {
		return "", false
	}
	return cleaned, true
}

func contentTypeFor(key string) string {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
