package storage

import (
	"context"
	"io"
)

// StorageService defines the interface for profile media storage.
type StorageService interface {
	// UploadImage stores image bytes under the given folder and public ID and
	// returns a durable public URL.
	UploadImage(ctx context.Context, r io.Reader, destFolder, publicID string) (string, error)
	// DeleteImage removes a previously uploaded image by its public ID.
	DeleteImage(ctx context.Context, publicID string) error
}
