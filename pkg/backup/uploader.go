package backup

import (
	"context"

	errs "vkbackup/pkg/errors"
	"vkbackup/pkg/logger"
	"vkbackup/pkg/models"
	"vkbackup/pkg/ratelimit"
)

// DefaultFolderPrefix is prepended to the user id to name the destination folder
const DefaultFolderPrefix = "VK_Photos_"

// Uploader copies photo records into a per-user storage folder, one at a time
type Uploader struct {
	storage      StorageClient
	folderPrefix string
	name         NameFunc
	limiter      ratelimit.Limiter
	progress     ProgressObserver
	logger       logger.Logger
}

// UploaderOption configures an Uploader
type UploaderOption func(*Uploader)

// WithNaming sets how destination files are named
func WithNaming(name NameFunc) UploaderOption {
	return func(u *Uploader) {
		if name != nil {
			u.name = name
		}
	}
}

// WithLimiter paces upload requests. A nil limiter disables pacing.
func WithLimiter(l *ratelimit.TokenBucket) UploaderOption {
	return func(u *Uploader) {
		if l != nil {
			u.limiter = l
		}
	}
}

// WithProgress reports every uploaded photo to p
func WithProgress(p ProgressObserver) UploaderOption {
	return func(u *Uploader) {
		if p != nil {
			u.progress = p
		}
	}
}

// WithFolderPrefix overrides DefaultFolderPrefix
func WithFolderPrefix(prefix string) UploaderOption {
	return func(u *Uploader) {
		if prefix != "" {
			u.folderPrefix = prefix
		}
	}
}

// NewUploader creates an uploader over storage
func NewUploader(storage StorageClient, log logger.Logger, opts ...UploaderOption) *Uploader {
	if log == nil {
		log = logger.GetLogger()
	}
	u := &Uploader{
		storage:      storage,
		folderPrefix: DefaultFolderPrefix,
		name:         NameByLikes,
		progress:     nopProgress{},
		logger:       log,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// FolderName returns the destination folder for userID
func (u *Uploader) FolderName(userID string) string {
	return u.folderPrefix + userID
}

// Upload ensures the user's folder exists and then requests an upload by URL
// for every record in order. The first rejected upload aborts the call and
// no results are returned.
func (u *Uploader) Upload(ctx context.Context, userID string, records []models.PhotoRecord) ([]models.UploadResult, error) {
	folder := u.FolderName(userID)
	log := u.logger.WithField("folder", folder)

	status, err := u.storage.CreateFolder(ctx, folder)
	if err != nil {
		log.WithError(err).Error("Failed to create destination folder")
		return nil, err
	}
	log.InfoWithFields("Destination folder ready", map[string]interface{}{
		"status": status,
	})

	u.progress.Start(len(records))
	defer u.progress.Finish()

	results := make([]models.UploadResult, 0, len(records))
	seen := make(map[string]int, len(records))

	for i, record := range records {
		if u.limiter != nil {
			if err := u.limiter.Wait(ctx); err != nil {
				return nil, errs.Transport(0, "upload interrupted while pacing", err)
			}
		}

		fileName := u.name(i, record)
		if first, dup := seen[fileName]; dup {
			log.WarnWithFields("Destination name collision, later photo replaces earlier one", map[string]interface{}{
				"file_name":   fileName,
				"first_index": first,
				"index":       i,
			})
		} else {
			seen[fileName] = i
		}

		if err := u.storage.UploadFromURL(ctx, folder+"/"+fileName, record.URL); err != nil {
			logger.LogUpload(log, fileName, record.Size, err)
			return nil, err
		}
		logger.LogUpload(log, fileName, record.Size, nil)

		results = append(results, models.UploadResult{
			FileName: fileName,
			Size:     record.Size,
		})
		u.progress.Advance(fileName)
	}

	return results, nil
}
