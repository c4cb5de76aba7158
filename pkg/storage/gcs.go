package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/voidshard/pipewright/pkg/errors"
)

// Options for Google Cloud Storage
type Options struct {
	// Bucket everything is written to
	Bucket string

	// Prefix is prepended to every key
	Prefix string

	// CredentialsFile is a service account key. If empty, application default
	// credentials are used.
	CredentialsFile string
}

// GCS is a BlobStore backed by a Google Cloud Storage bucket.
type GCS struct {
	opts   *Options
	client *storage.Client
	bucket *storage.BucketHandle
}

func NewGCS(ctx context.Context, opts *Options) (*GCS, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("%w bucket required", errors.ErrInvalidArg)
	}
	copts := []option.ClientOption{}
	if opts.CredentialsFile != "" {
		copts = append(copts, option.WithCredentialsFile(opts.CredentialsFile))
	}
	client, err := storage.NewClient(ctx, copts...)
	if err != nil {
		return nil, err
	}
	return &GCS{opts: opts, client: client, bucket: client.Bucket(opts.Bucket)}, nil
}

func (g *GCS) object(key string) *storage.ObjectHandle {
	return g.bucket.Object(objectName(g.opts.Prefix, key))
}

func (g *GCS) Put(ctx context.Context, key string, data []byte, contentType string) error {
	w := g.object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (g *GCS) Get(ctx context.Context, key string) ([]byte, error) {
	r, err := g.object(key).NewReader(ctx)
	if err == storage.ErrObjectNotExist {
		return nil, fmt.Errorf("%w object %s", errors.ErrNotFound, key)
	} else if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (g *GCS) Delete(ctx context.Context, key string) error {
	err := g.object(key).Delete(ctx)
	if err == storage.ErrObjectNotExist {
		return nil
	}
	return err
}

func (g *GCS) Attrs(ctx context.Context, key string) (*ObjectInfo, error) {
	attrs, err := g.object(key).Attrs(ctx)
	if err == storage.ErrObjectNotExist {
		return nil, fmt.Errorf("%w object %s", errors.ErrNotFound, key)
	} else if err != nil {
		return nil, err
	}
	return &ObjectInfo{
		Key:         key,
		Size:        attrs.Size,
		ContentType: attrs.ContentType,
		Updated:     attrs.Updated,
	}, nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}

func objectName(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return path.Join(prefix, key)
}
