// Package assets stores and deletes cover images by opaque key. Deletion is
// best-effort everywhere it's used: an orphaned image is tolerated, a
// dangling data-graph reference is not.
package assets

import (
	"context"
	"log"

	"github.com/pkg/errors"
)

// StoredAsset is the public URL plus the key needed to delete the object
// later.
type StoredAsset struct {
	Url string
	Key string
}

type Client interface {
	Store(ctx context.Context, data []byte, contentType string) (*StoredAsset, error)
	Delete(ctx context.Context, key string) error
}

var client Client

// SetClient installs the active asset backend. Tests install a Recorder;
// main installs the S3 client.
func SetClient(c Client) {
	client = c
}

// Store uploads an asset. Unlike deletion, upload failures are fatal to the
// caller - a post can't be created without its cover.
func Store(ctx context.Context, data []byte, contentType string) (*StoredAsset, error) {
	if client == nil {
		return nil, errors.New("no asset store configured")
	}
	return client.Store(ctx, data, contentType)
}

// Delete removes an asset by key. Errors are logged and swallowed - asset
// deletion is best-effort everywhere the cascade engine calls it.
func Delete(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if client == nil {
		log.Printf("no asset store configured, skipping delete of %s\n", key)
		return
	}
	if err := client.Delete(ctx, key); err != nil {
		log.Printf("error deleting asset %s: %v\n", key, err)
	}
}
