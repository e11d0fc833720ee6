package origin

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"birl/pkg/platform/sentinel"
)

// LocalFS implements ports.OriginStore over a directory tree. Keys are
// slash-separated paths relative to the root.
type LocalFS struct {
	root string
}

// NewLocalFS creates a filesystem origin rooted at root. The directory must
// exist.
func NewLocalFS(root string) (*LocalFS, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat origin root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("origin root %s is not a directory", root)
	}
	return &LocalFS{root: root}, nil
}

// Root returns the directory the store reads from.
func (s *LocalFS) Root() string {
	return s.root
}

// Health reports whether the root directory is still readable.
func (s *LocalFS) Health(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(s.root); err != nil {
		return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

// Get reads the file for key. When it is absent, the immediate
// subdirectories of its parent are searched for a file with the same name,
// so assets may be grouped one level deeper than their canonical key.
func (s *LocalFS) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: read %s: %w", sentinel.ErrUnavailable, key, err)
	}

	if data, ok := s.searchSubdirs(path); ok {
		return data, nil
	}
	return nil, fmt.Errorf("%w: %s", sentinel.ErrNotFound, key)
}

func (s *LocalFS) searchSubdirs(path string) ([]byte, bool) {
	dir, name := filepath.Split(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, false
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name(), name))
		if err == nil {
			return data, true
		}
	}
	return nil, false
}

// Put writes data to the file for key, creating parent directories. The
// file is written to a temporary name and renamed so readers never observe
// a partial object.
func (s *LocalFS) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: create dir for %s: %w", sentinel.ErrUnavailable, key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp for %s: %w", sentinel.ErrUnavailable, key, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %s: %w", sentinel.ErrUnavailable, key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", sentinel.ErrUnavailable, key, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: rename %s: %w", sentinel.ErrUnavailable, key, err)
	}
	return nil
}

// path maps key to a file under root, rejecting keys that escape it.
func (s *LocalFS) path(key string) (string, error) {
	rel := filepath.FromSlash(key)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: key %q escapes origin root", sentinel.ErrNotFound, key)
	}
	return filepath.Join(s.root, rel), nil
}
