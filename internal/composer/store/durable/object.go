package durable

import (
	"context"
	"fmt"

	"birl/internal/composer/models"
	"birl/internal/composer/ports"
	"birl/pkg/platform/sentinel"
)

// Object persists composites in the origin store's cache folder. Plates and
// layers already live in the origin store, so they are never duplicated:
// lookups miss and writes are dropped.
type Object struct {
	origin    ports.OriginStore
	namespace string
}

// NewObject creates a durable tier over origin.
func NewObject(origin ports.OriginStore, namespace string) *Object {
	return &Object{origin: origin, namespace: namespace}
}

// Get fetches a cached composite.
func (o *Object) Get(ctx context.Context, key models.EntryKey) ([]byte, error) {
	if key.Kind != models.EntryComposite {
		return nil, fmt.Errorf("%w: %s", sentinel.ErrNotFound, key)
	}
	return o.origin.Get(ctx, models.OriginKey(o.namespace, key))
}

// Put stores a composite under {namespace}/cache/{fingerprint}.{ext}.
func (o *Object) Put(ctx context.Context, key models.EntryKey, data []byte) error {
	if key.Kind != models.EntryComposite {
		return nil
	}
	return o.origin.Put(ctx, models.OriginKey(o.namespace, key), data)
}
