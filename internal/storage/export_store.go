package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rmitchellscott/orangesnap/internal/config"
	"github.com/rmitchellscott/orangesnap/internal/logging"
)

// ExportStore saves rendered PNGs under content-hash names so repeated
// exports of the same composite land on the same file.
type ExportStore struct {
	backend Backend
	root    string
	now     func() time.Time
}

// NewExportStore stores exports in dir.
func NewExportStore(dir string) *ExportStore {
	return &ExportStore{backend: NewFilesystemBackend(dir), root: dir, now: time.Now}
}

// DefaultExportStore uses RENDERED_IMAGES_PATH, falling back to ./exports.
func DefaultExportStore() *ExportStore {
	return NewExportStore(config.Get("RENDERED_IMAGES_PATH", filepath.Join(".", "exports")))
}

// KeyFor derives the file name for a PNG.
func KeyFor(png []byte) string {
	hash := sha256.Sum256(png)
	return fmt.Sprintf("beautified-%x.png", hash[:8])
}

// Store writes png and returns its key and full path.
func (s *ExportStore) Store(ctx context.Context, png []byte) (string, string, error) {
	key := KeyFor(png)
	if err := s.backend.Put(ctx, key, bytes.NewReader(png)); err != nil {
		return "", "", fmt.Errorf("failed to store export: %w", err)
	}
	path := filepath.Join(s.root, key)
	logging.InfoWithComponent(logging.ComponentExport, "Stored export", "path", path, "bytes", len(png))
	return key, path, nil
}

// List returns stored exports.
func (s *ExportStore) List(ctx context.Context) ([]FileInfo, error) {
	return s.backend.List(ctx, "beautified-")
}

// Prune removes exports older than maxAge and returns how many were removed.
func (s *ExportStore) Prune(ctx context.Context, maxAge time.Duration) (int, error) {
	files, err := s.List(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-maxAge)
	removed := 0
	for _, f := range files {
		if !f.ModTime.Before(cutoff) {
			continue
		}
		if err := s.backend.Delete(ctx, f.Key); err != nil {
			logging.WarnWithComponent(logging.ComponentExport, "Failed to remove old export", "key", f.Key, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}
