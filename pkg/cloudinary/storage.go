package cloudinary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Storage maps buckets to Cloudinary folders. Uploads are private
// ("authenticated") so they can only be fetched through signed URLs.
type Storage struct {
	cld    *cld.Cloudinary
	prefix string
}

func NewStorage(cloud *cld.Cloudinary, prefix string) *Storage {
	return &Storage{cld: cloud, prefix: prefix}
}

func (s *Storage) publicID(bucket, p string) string {
	p = strings.TrimSuffix(p, path.Ext(p))
	return path.Join(s.prefix, bucket, p)
}

func (s *Storage) Upload(ctx context.Context, bucket, p string, b []byte, contentType string) (string, error) {
	if len(b) == 0 {
		return "", errors.New("empty file")
	}

	res, err := s.cld.Upload.Upload(ctx, bytes.NewReader(b), uploader.UploadParams{
		PublicID:     s.publicID(bucket, p),
		ResourceType: "image", // images and pdfs
		Type:         "authenticated",
		Overwrite:    boolPtr(false),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload failed: %s", res.Error.Message)
	}
	return p, nil
}

func (s *Storage) Remove(ctx context.Context, bucket string, paths ...string) error {
	var errs []error
	for _, p := range paths {
		if p == "" {
			continue
		}
		res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
			PublicID:     s.publicID(bucket, p),
			ResourceType: "image",
			Type:         "authenticated",
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("destroy %s: %w", p, err))
			continue
		}
		if res.Error.Message != "" {
			errs = append(errs, fmt.Errorf("destroy %s: %s", p, res.Error.Message))
		}
	}
	return errors.Join(errs...)
}

func (s *Storage) SignedURL(ctx context.Context, bucket, p string) (string, error) {
	asset, err := s.cld.Image(s.publicID(bucket, p))
	if err != nil {
		return "", err
	}
	asset.DeliveryType = "authenticated"
	asset.Config.URL.Secure = true
	asset.Config.URL.SignURL = true
	return asset.String()
}

func boolPtr(b bool) *bool {
	return &b
}
