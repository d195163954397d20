package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"lending-engine/internal/domain/docstore"
)

// CloudinaryStore keeps borrower documents (identity scans, payslips) in
// Cloudinary and hands back their public URLs.
type CloudinaryStore struct {
	client *cloudinary.Cloudinary
}

var _ docstore.Store = (*CloudinaryStore)(nil)

func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryStore{client: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, r io.Reader, folder, filename string) (string, error) {
	res, err := s.client.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:    folder,
		PublicID:  publicID(filename),
		Overwrite: func(b bool) *bool { return &b }(true),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	return res.SecureURL, nil
}

// publicID disambiguates repeated uploads of the same filename.
func publicID(filename string) string {
	base := filename[:len(filename)-len(filepath.Ext(filename))]
	return fmt.Sprintf("%s_%d", base, time.Now().Unix())
}
