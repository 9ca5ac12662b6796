package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalImageStore removes product images from a directory on local disk.
type LocalImageStore struct {
	root string
}

// NewLocalImageStore creates a store rooted at dir.
func NewLocalImageStore(dir string) *LocalImageStore {
	return &LocalImageStore{root: dir}
}

// Remove deletes the file named by path, resolved under the store root.
// Paths escaping the root are rejected; a missing file is not an error.
func (s *LocalImageStore) Remove(_ context.Context, path string) error {
	clean := filepath.Clean(filepath.Join(s.root, filepath.FromSlash(path)))
	root := filepath.Clean(s.root)
	if clean != root && !strings.HasPrefix(clean, root+string(filepath.Separator)) {
		return fmt.Errorf("image path %q escapes storage root", path)
	}
	if err := os.Remove(clean); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
