package ports

import (
	"context"
	"io"
)

// Upload categories, each stored under its own directory
const (
	UploadCategoryNIC      = "nic"
	UploadCategoryBusiness = "business"
	UploadCategorySlips    = "slips"
	UploadCategoryGems     = "gems"
)

// UploadedFile is a file received from a client
type UploadedFile struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// FileStore persists uploaded files and returns their public path
type FileStore interface {
	Save(ctx context.Context, category string, file UploadedFile) (string, error)
	Delete(ctx context.Context, path string) error
	// Owns reports whether path is a file this store saved under category.
	Owns(path, category string) bool
}
