package storage

import (
	"context"
	"time"
)

// ObjectInfo describes a stored object
type ObjectInfo struct {
	Key         string    `json:"key"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	Updated     time.Time `json:"updated"`
}

// BlobStore is a flat key -> bytes store.
//
// Get & Attrs return errors.ErrNotFound if the key does not exist.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Attrs(ctx context.Context, key string) (*ObjectInfo, error)
}
