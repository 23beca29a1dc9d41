package blob

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nis2-copilot/config"
)

// LocalStore persists blobs under a root directory on disk. URLs are served
// from PublicBaseURL when configured, otherwise a file:// URL is returned.
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(cfg config.StorageConfig) (*LocalStore, error) {
	root := cfg.LocalDir
	if root == "" {
		root = "data/blobs"
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, err
	}
	return &LocalStore{root: root, baseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/")}, nil
}

func (s *LocalStore) Put(ctx context.Context, objectPath string, data []byte, contentType string) (PutResult, error) {
	clean, err := cleanObjectPath(objectPath)
	if err != nil {
		return PutResult{}, err
	}
	full := filepath.Join(s.root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(full), 0o700); err != nil {
		return PutResult{}, err
	}
	if err := os.WriteFile(full, data, 0o600); err != nil {
		return PutResult{}, err
	}
	url := s.baseURL + "/" + clean
	if s.baseURL == "" {
		abs, err := filepath.Abs(full)
		if err != nil {
			abs = full
		}
		url = "file://" + filepath.ToSlash(abs)
	}
	return PutResult{URL: url, Path: clean, Size: int64(len(data))}, nil
}

// Sweep removes stored files whose modification time is before cutoff and
// returns how many were removed. Directories are left in place.
func (s *LocalStore) Sweep(cutoff time.Time) (int, error) {
	removed := 0
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			if os.Remove(p) == nil {
				removed++
			}
		}
		return nil
	})
	return removed, err
}
