// Package cloudinary wraps image uploads for profile insight
// screenshots. Uploads go into a per-environment folder and return the
// delivery URL.
package cloudinary

import (
	"context"
	"fmt"
	"mime/multipart"

	"promolink/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type Uploader struct {
	client *cloudinary.Cloudinary
	folder string
}

func New(cfg *config.CloudinaryConfig, folder string) (*Uploader, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials are not configured")
	}
	client, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("initializing cloudinary: %w", err)
	}
	return &Uploader{client: client, folder: folder}, nil
}

// UploadImage stores the file and returns its secure delivery URL.
func (u *Uploader) UploadImage(ctx context.Context, file multipart.File, publicID string) (string, error) {
	resp, err := u.client.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   u.folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}
	return resp.SecureURL, nil
}

// Delete removes a previously uploaded asset.
func (u *Uploader) Delete(ctx context.Context, publicID string) error {
	_, err := u.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: fmt.Sprintf("%s/%s", u.folder, publicID),
	})
	return err
}
