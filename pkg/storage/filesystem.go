package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const tempPrefix = ".part-"

// LocalStorage keeps rendered rental exports on disk under a root directory.
type LocalStorage struct {
	root string
	now  func() time.Time
}

// NewLocalStorage creates root if needed.
func NewLocalStorage(root string) (*LocalStorage, error) {
	if root == "" {
		root = "./exports"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create export root %s: %w", root, err)
	}
	return &LocalStorage{root: root, now: time.Now}, nil
}

// Save writes data to name through a temp file and rename, so readers never see
// a partial export. It returns name unchanged.
func (s *LocalStorage) Save(name string, data []byte) (string, error) {
	path := s.resolve(name)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, tempPrefix+"*")
	if err != nil {
		return "", fmt.Errorf("create temp export: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close export: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("chmod export: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("publish export: %w", err)
	}
	return name, nil
}

// Open returns a read-only handle.
func (s *LocalStorage) Open(name string) (*os.File, error) {
	f, err := os.Open(s.resolve(name))
	if err != nil {
		return nil, fmt.Errorf("open export %s: %w", name, err)
	}
	return f, nil
}

// Delete removes name. A missing file is not an error.
func (s *LocalStorage) Delete(name string) error {
	if err := os.Remove(s.resolve(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete export %s: %w", name, err)
	}
	return nil
}

// CleanupOlderThan deletes exports last modified more than ttl ago, then prunes
// directories left empty. Names are returned relative to root, sorted.
func (s *LocalStorage) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	cutoff := s.now().Add(-ttl)
	var deleted, dirs []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.root {
				dirs = append(dirs, path)
			}
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		if strings.HasPrefix(d.Name(), tempPrefix) {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			rel = path
		}
		deleted = append(deleted, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cleanup exports: %w", err)
	}
	// Deepest first; Remove fails harmlessly on non-empty dirs.
	for i := len(dirs) - 1; i >= 0; i-- {
		_ = os.Remove(dirs[i])
	}
	sort.Strings(deleted)
	return deleted, nil
}

// resolve roots name under the storage root; ".." cannot escape it.
func (s *LocalStorage) resolve(name string) string {
	return filepath.Join(s.root, filepath.Clean("/"+name))
}
