package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageServiceImpl implements StorageService backed by Cloudinary.
type StorageServiceImpl struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}

// NewStorageService creates a new StorageServiceImpl instance.
func NewStorageService(cld *cloudinary.Cloudinary, cloudName string) StorageService {
	return &StorageServiceImpl{
		cld:       cld,
		cloudName: cloudName,
	}
}

// UploadImage uploads image bytes to Cloudinary into the specified folder and
// returns the secure delivery URL.
func (s *StorageServiceImpl) UploadImage(ctx context.Context, r io.Reader, destFolder, publicID string) (string, error) {
	uploadParams := uploader.UploadParams{
		Folder:    destFolder,
		PublicID:  publicID,
		Overwrite: api.Bool(true),
	}
	result, err := s.cld.Upload.Upload(ctx, r, uploadParams)
	if err != nil {
		return "", fmt.Errorf("StorageServiceImpl: failed to upload image: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("StorageServiceImpl: no URL returned")
	}
	return result.SecureURL, nil
}

// DeleteImage deletes an image from Cloudinary given its public ID.
func (s *StorageServiceImpl) DeleteImage(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("StorageServiceImpl: failed to delete image: %w", err)
	}
	return nil
}
