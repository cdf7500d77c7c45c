package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSBackend serves assets from a Cloud Storage bucket, optionally below a prefix.
type GCSBackend struct {
	Client *storage.Client
	Bucket string
	Prefix string
}

func NewGCSBackend(client *storage.Client, bucket, prefix string) *GCSBackend {
	if client == nil {
		panic("gcs asset backend requires client")
	}
	if bucket == "" {
		panic("gcs asset backend requires bucket")
	}
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &GCSBackend{Client: client, Bucket: bucket, Prefix: prefix}
}

func (b *GCSBackend) Open(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	cleaned, ok := cleanKey(key)
	if !ok {
		return nil, ObjectInfo{}, ErrObjectNotFound
	}

	reader, err := b.Client.Bucket(b.Bucket).Object(b.Prefix + cleaned).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ObjectInfo{}, ErrObjectNotFound
		}
		return nil, ObjectInfo{}, fmt.Errorf("read object %q: %w", cleaned, err)
	}

	info := ObjectInfo{
		ContentType: reader.Attrs.ContentType,
		Size:        reader.Attrs.Size,
		ModTime:     reader.Attrs.LastModified,
	}
	if info.ContentType == "" {
		info.ContentType = contentTypeFor(cleaned)
	}
	return reader, info, nil
}

// Check verifies bucket access by reading its attributes and listing one object under the prefix.
func (b *GCSBackend) Check(ctx context.Context) error {
	bkt := b.Client.Bucket(b.Bucket)
	if _, err := bkt.Attrs(ctx); err != nil {
		return fmt.Errorf("bucket attrs: %w", err)
	}

	it := bkt.Objects(ctx, &storage.Query{Prefix: b.Prefix})
	if _, err := it.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("list prefix: %w", err)
	}
	return nil
}

var _ Backend = (*GCSBackend)(nil)
