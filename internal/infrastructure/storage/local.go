package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	domainerrors "gem-auction.backend/internal/domain/errors"
	"gem-auction.backend/internal/domain/ports"
	"gem-auction.backend/pkg/utils"
)

// PublicPrefix is the URL prefix uploaded files are served under
const PublicPrefix = "/uploads/"

// LocalFileStore writes uploads to <dir>/<category>/<uuid><ext>
type LocalFileStore struct {
	dir      string
	maxBytes int64
}

// NewLocalFileStore creates the category directories under dir
func NewLocalFileStore(dir string, maxBytes int64) (*LocalFileStore, error) {
	for category := range allowedExts {
		if err := os.MkdirAll(filepath.Join(dir, category), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &LocalFileStore{dir: dir, maxBytes: maxBytes}, nil
}

// Dir is the root directory served at PublicPrefix
func (s *LocalFileStore) Dir() string {
	return s.dir
}

// Save validates and stores the file, returning its public path
func (s *LocalFileStore) Save(ctx context.Context, category string, file ports.UploadedFile) (string, error) {
	ext, err := validateUpload(category, file, s.maxBytes)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := utils.GenerateUUIDv7().String() + ext
	target := filepath.Join(s.dir, category, name)
	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}

	limit := s.maxBytes
	if limit <= 0 {
		limit = file.Size
	}
	written, copyErr := io.Copy(dst, io.LimitReader(src, limit+1))
	closeErr := dst.Close()
	if copyErr == nil && written > limit {
		copyErr = domainerrors.Validation("file too large")
	}
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		_ = os.Remove(target)
		return "", copyErr
	}

	return PublicPrefix + category + "/" + name, nil
}

// Owns reports whether path names a single file under /uploads/<category>/
func (s *LocalFileStore) Owns(path, category string) bool {
	name := strings.TrimPrefix(path, PublicPrefix+category+"/")
	if name == path || name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\")
}

// Delete removes a file previously returned by Save. Missing files are
// ignored and paths outside the upload root are refused.
func (s *LocalFileStore) Delete(_ context.Context, path string) error {
	rel := strings.TrimPrefix(path, PublicPrefix)
	if rel == path || rel == "" {
		return domainerrors.Validation("not an upload path: %s", path)
	}
	target := filepath.Join(s.dir, filepath.FromSlash(rel))
	root, err := filepath.Abs(s.dir)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return domainerrors.Validation("not an upload path: %s", path)
	}
	if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
