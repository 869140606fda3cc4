package backup

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"vkbackup/pkg/config"
	errs "vkbackup/pkg/errors"
	"vkbackup/pkg/logger"
	"vkbackup/pkg/manifest"
	"vkbackup/pkg/ratelimit"
	"vkbackup/pkg/ui"
	"vkbackup/pkg/vk"
	"vkbackup/pkg/yadisk"
)

// Stage names used when wrapping errors
const (
	StageFetch    = "fetch photos"
	StageUpload   = "upload photos"
	StageManifest = "save manifest"
)

// Summary describes a completed run
type Summary struct {
	RunID        string
	Photos       int
	Folder       string
	ManifestPath string
	Duration     time.Duration
}

// Backup runs the fetch, upload and manifest stages once for one user
type Backup struct {
	lister   PhotoLister
	uploader *Uploader
	manifest ManifestWriter
	userID   string
	count    int
	logger   logger.Logger
}

// New creates a Backup from its parts
func New(lister PhotoLister, uploader *Uploader, manifest ManifestWriter, userID string, count int, log logger.Logger) *Backup {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Backup{
		lister:   lister,
		uploader: uploader,
		manifest: manifest,
		userID:   userID,
		count:    count,
		logger:   log,
	}
}

// NewFromConfig wires the VK lister, the Yandex Disk uploader and the manifest
// writer from cfg. Credentials, user id and photo count must already be set.
func NewFromConfig(cfg *config.Config, progress ProgressObserver, log logger.Logger) (*Backup, error) {
	if log == nil {
		log = logger.GetLogger()
	}
	if err := cfg.RequireCredentials(); err != nil {
		return nil, errs.Config("incomplete run configuration", err)
	}

	name, err := Namer(cfg.Backup.Naming)
	if err != nil {
		return nil, err
	}

	lister := vk.NewClient(cfg.VK, cfg.HTTP, log)
	storage := yadisk.NewClient(cfg.Disk, cfg.HTTP, log)
	uploader := NewUploader(storage, log,
		WithNaming(name),
		WithFolderPrefix(cfg.Disk.FolderPrefix),
		WithLimiter(ratelimit.PerMinute(cfg.Disk.RequestsPerMinute)),
		WithProgress(progress),
	)
	writer := manifest.NewWriter(cfg.Backup.ManifestPath, log)

	return New(lister, uploader, writer, cfg.Backup.UserID, cfg.Backup.PhotoCount, log), nil
}

// Run executes the three stages in order and stops at the first error.
// Nothing is written to the manifest unless every upload was accepted.
func (b *Backup) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := b.logger.WithFields(map[string]interface{}{
		"run_id":  runID,
		"user_id": b.userID,
	})

	log.InfoWithFields("Backup started", map[string]interface{}{
		"count": b.count,
	})

	ui.PrintStage("Fetching photos from VK...")
	records, err := b.lister.GetProfilePhotos(ctx, b.userID, b.count)
	if err != nil {
		log.WithError(err).Error("Failed to fetch photos")
		return nil, fmt.Errorf("%s: %w", StageFetch, err)
	}
	log.InfoWithFields("Photos fetched", map[string]interface{}{
		"photos": len(records),
	})
	ui.PrintInfo("Photos found", strconv.Itoa(len(records)))

	ui.PrintStage("Uploading photos to Yandex Disk...")
	results, err := b.uploader.Upload(ctx, b.userID, records)
	if err != nil {
		log.WithError(err).Error("Upload aborted")
		return nil, fmt.Errorf("%s: %w", StageUpload, err)
	}

	ui.PrintStage("Saving results to manifest...")
	if err := b.manifest.Write(results); err != nil {
		log.WithError(err).Error("Failed to save manifest")
		return nil, fmt.Errorf("%s: %w", StageManifest, err)
	}

	summary := &Summary{
		RunID:        runID,
		Photos:       len(results),
		Folder:       b.uploader.FolderName(b.userID),
		ManifestPath: b.manifest.Path(),
		Duration:     time.Since(start),
	}

	log.InfoWithFields("Backup completed", map[string]interface{}{
		"photos":   summary.Photos,
		"folder":   summary.Folder,
		"manifest": summary.ManifestPath,
		"duration": summary.Duration,
	})
	ui.PrintSuccess("Backup completed successfully!")

	return summary, nil
}
