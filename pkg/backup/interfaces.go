package backup

import (
	"context"

	"vkbackup/pkg/models"
)

// PhotoLister lists the photos to back up
type PhotoLister interface {
	GetProfilePhotos(ctx context.Context, ownerID string, count int) ([]models.PhotoRecord, error)
}

// StorageClient is the storage provider surface the uploader needs
type StorageClient interface {
	// CreateFolder returns the provider's status code; a non-2xx status is not an error
	CreateFolder(ctx context.Context, path string) (int, error)
	UploadFromURL(ctx context.Context, path, sourceURL string) error
}

// ManifestWriter persists the upload results of a run
type ManifestWriter interface {
	Write(results []models.UploadResult) error
	Path() string
}

// ProgressObserver is told about upload progress
type ProgressObserver interface {
	Start(total int)
	Advance(fileName string)
	Finish()
}

type nopProgress struct{}

func (nopProgress) Start(int)      {}
func (nopProgress) Advance(string) {}
func (nopProgress) Finish()        {}
