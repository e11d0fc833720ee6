// Package ports declares the collaborators the composition pipeline depends
// on. Implementations live in the store, cache and compositor packages.
package ports

import (
	"context"
	"image"

	"birl/internal/composer/models"
)

// OriginStore is the system of record for plates, layers and cached
// artifacts, addressed by slash-separated keys.
// Get returns sentinel.ErrNotFound when the key is absent and
// sentinel.ErrUnavailable when the store cannot be reached.
type OriginStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// DurableTier is the unbounded second cache tier. Entries are immutable once
// written and have no TTL.
type DurableTier interface {
	// Get returns sentinel.ErrNotFound on a miss.
	Get(ctx context.Context, key models.EntryKey) ([]byte, error)
	Put(ctx context.Context, key models.EntryKey, data []byte) error
}

// FastTier is the bounded process-local first cache tier.
type FastTier interface {
	Get(key models.EntryKey) ([]byte, bool)
	Add(key models.EntryKey, data []byte)
	Len() int
	Cap() int
	Purge()
}

// Codec decodes source assets and encodes finished canvases.
type Codec interface {
	Decode(data []byte) (image.Image, error)
	Encode(img image.Image, format models.Format) ([]byte, error)
}
