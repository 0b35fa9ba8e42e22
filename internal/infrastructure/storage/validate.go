package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	domainerrors "gem-auction.backend/internal/domain/errors"
	"gem-auction.backend/internal/domain/ports"
)

var (
	imageExts    = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
	documentExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".pdf": true}
)

// allowedExts maps each upload category to the file types it accepts
var allowedExts = map[string]map[string]bool{
	ports.UploadCategoryNIC:      imageExts,
	ports.UploadCategoryGems:     imageExts,
	ports.UploadCategoryBusiness: documentExts,
	ports.UploadCategorySlips:    documentExts,
}

// validateUpload checks category, extension and size, returning the
// lower-cased extension.
func validateUpload(category string, file ports.UploadedFile, maxBytes int64) (string, error) {
	exts, ok := allowedExts[category]
	if !ok {
		return "", domainerrors.Validation("unknown upload category %q", category)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !exts[ext] {
		return "", domainerrors.Validation("file type %q is not allowed", ext)
	}
	if file.Size <= 0 {
		return "", domainerrors.Validation("file %q is empty", file.Filename)
	}
	if maxBytes > 0 && file.Size > maxBytes {
		return "", domainerrors.Validation("file too large (max %s)", humanBytes(maxBytes))
	}
	if file.Open == nil {
		return "", fmt.Errorf("upload %q has no reader", file.Filename)
	}
	return ext, nil
}

func humanBytes(n int64) string {
	const mb = 1024 * 1024
	if n >= mb && n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}
