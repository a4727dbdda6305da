package storage

import (
	"context"
	"io"
)

// ObjectStorage defines the object operations uploads need across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}

// Active is the storage backend uploads go through. Init sets it before the
// server starts.
var Active ObjectStorage

// Init wires the MinIO backend from the loaded config and ensures the bucket
// exists.
func Init(ctx context.Context) error {
	client, err := NewMinioClient()
	if err != nil {
		return err
	}
	if err := client.EnsureBucket(ctx); err != nil {
		return err
	}
	Active = client
	return nil
}
