// Package origin holds the OriginStore implementations: an in-memory map for
// tests and the CLI, the local filesystem, and MinIO/S3.
package origin

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"birl/pkg/platform/sentinel"
)

// InMemory implements ports.OriginStore over a map. Stored slices are copied
// on the way in and out.
type InMemory struct {
	mu      sync.RWMutex
	objects map[string][]byte
	gets    map[string]int
}

// NewInMemory creates an empty in-memory origin store.
func NewInMemory() *InMemory {
	return &InMemory{
		objects: make(map[string][]byte),
		gets:    make(map[string]int),
	}
}

// Get returns a copy of the object stored under key.
func (s *InMemory) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gets[key]++
	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", sentinel.ErrNotFound, key)
	}
	return slices.Clone(data), nil
}

// Put stores a copy of data under key, replacing any previous object.
func (s *InMemory) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[key] = slices.Clone(data)
	return nil
}

// Delete removes key. Missing keys are ignored.
func (s *InMemory) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
}

// Keys lists stored keys with the given prefix in sorted order.
func (s *InMemory) Keys(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for k := range s.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// Gets reports how many times key was requested, hits and misses alike.
func (s *InMemory) Gets(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gets[key]
}
