package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// LocalBackend serves assets from a directory on disk.
type LocalBackend struct {
	BasePath string
	fsys     fs.FS
}

func NewLocalBackend(basePath string) *LocalBackend {
	if basePath == "" {
		panic("local asset backend requires basePath")
	}
	return &LocalBackend{BasePath: basePath, fsys: os.DirFS(basePath)}
}

func (b *LocalBackend) Open(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	cleaned, ok := cleanKey(key)
	if !ok || !fs.ValidPath(cleaned) {
		return nil, ObjectInfo{}, ErrObjectNotFound
	}

	f, err := b.fsys.Open(cleaned)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ObjectInfo{}, ErrObjectNotFound
		}
		return nil, ObjectInfo{}, fmt.Errorf("open asset %q: %w", cleaned, err)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, ObjectInfo{}, fmt.Errorf("stat asset %q: %w", cleaned, err)
	}
	if stat.IsDir() {
		_ = f.Close()
		return nil, ObjectInfo{}, ErrObjectNotFound
	}

	return f, ObjectInfo{
		ContentType: contentTypeFor(cleaned),
		Size:        stat.Size(),
		ModTime:     stat.ModTime(),
	}, nil
}

// Check ensures the base directory exists.
func (b *LocalBackend) Check(ctx context.Context) error {
	stat, err := os.Stat(b.BasePath)
	if err != nil {
		return fmt.Errorf("stat asset dir: %w", err)
	}
	if !stat.IsDir() {
		return fmt.Errorf("asset path %q is not a directory", b.BasePath)
	}
	return nil
}

var _ Backend = (*LocalBackend)(nil)
