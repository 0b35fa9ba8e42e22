package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"gem-auction.backend/internal/domain/ports"
	"gem-auction.backend/pkg/utils"
	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	cloudinaryRootFolder = "gem-auction"
	cloudinaryAssetHost  = "res.cloudinary.com"
)

type cloudinaryUploader interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryFileStore keeps uploads in Cloudinary and returns their secure URL
type CloudinaryFileStore struct {
	up       cloudinaryUploader
	maxBytes int64
}

// NewCloudinaryFileStore connects using a cloudinary://<key>:<secret>@<cloud> URL
func NewCloudinaryFileStore(cloudinaryURL string, maxBytes int64) (*CloudinaryFileStore, error) {
	if err := checkCloudinaryURL(cloudinaryURL); err != nil {
		return nil, err
	}
	client, err := cld.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryFileStore{up: &client.Upload, maxBytes: maxBytes}, nil
}

func checkCloudinaryURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("cloudinary init: CLOUDINARY_URL is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("cloudinary init: %w", err)
	}
	if u.Scheme != "cloudinary" {
		return fmt.Errorf("cloudinary init: scheme must be cloudinary://, got %q", u.Scheme)
	}
	if u.Host == "" || u.User == nil || u.User.Username() == "" {
		return fmt.Errorf("cloudinary init: url must carry key, secret and cloud name")
	}
	if secret, ok := u.User.Password(); !ok || secret == "" {
		return fmt.Errorf("cloudinary init: url must carry key, secret and cloud name")
	}
	return nil
}

// Save validates and uploads the file into <root>/<category>
func (s *CloudinaryFileStore) Save(ctx context.Context, category string, file ports.UploadedFile) (string, error) {
	if _, err := validateUpload(category, file, s.maxBytes); err != nil {
		return "", err
	}
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	res, err := s.up.Upload(ctx, src, uploader.UploadParams{
		Folder:       cloudinaryRootFolder + "/" + category,
		PublicID:     utils.GenerateUUIDv7().String(),
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

// Owns reports whether fileURL is a Cloudinary asset in <root>/<category>
func (s *CloudinaryFileStore) Owns(fileURL, category string) bool {
	u, err := url.Parse(fileURL)
	if err != nil || u.Scheme != "https" || u.Host != cloudinaryAssetHost {
		return false
	}
	publicID, _, err := publicIDFromURL(fileURL)
	if err != nil {
		return false
	}
	name := strings.TrimPrefix(publicID, cloudinaryRootFolder+"/"+category+"/")
	return name != publicID && name != "" && !strings.Contains(name, "/")
}

// Delete destroys the asset behind a URL returned by Save
func (s *CloudinaryFileStore) Delete(ctx context.Context, fileURL string) error {
	publicID, resourceType, err := publicIDFromURL(fileURL)
	if err != nil {
		return err
	}
	_, err = s.up.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, ResourceType: resourceType})
	return err
}

// publicIDFromURL extracts "<folder>/<id>" and the resource type from
// https://res.cloudinary.com/<cloud>/<type>/upload/v<version>/<folder>/<id>.<ext>
func publicIDFromURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}
	parts := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	for i, p := range parts {
		if p != "upload" || i == 0 {
			continue
		}
		rest := parts[i+1:]
		if len(rest) > 0 && strings.HasPrefix(rest[0], "v") && len(rest) > 1 {
			rest = rest[1:]
		}
		if len(rest) == 0 {
			break
		}
		id := strings.Join(rest, "/")
		return strings.TrimSuffix(id, path.Ext(id)), parts[i-1], nil
	}
	return "", "", fmt.Errorf("not a cloudinary asset url: %s", raw)
}
