package manifest

import (
	"encoding/json"
	"os"

	errs "vkbackup/pkg/errors"
	"vkbackup/pkg/logger"
	"vkbackup/pkg/models"
)

// Writer persists the upload results of a run as a JSON array
type Writer struct {
	path   string
	logger logger.Logger
}

// NewWriter creates a manifest writer for path
func NewWriter(path string, log logger.Logger) *Writer {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Writer{path: path, logger: log}
}

// Path returns the manifest location
func (w *Writer) Path() string {
	return w.path
}

// Write replaces the manifest with results. The parent directory must exist.
func (w *Writer) Write(results []models.UploadResult) error {
	if results == nil {
		results = []models.UploadResult{}
	}

	tempPath := w.path + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return errs.IO("failed to create manifest file", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "    ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(results); err != nil {
		file.Close()
		os.Remove(tempPath)
		return errs.IO("failed to encode manifest", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return errs.IO("failed to sync manifest file", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return errs.IO("failed to close manifest file", err)
	}

	if err := os.Rename(tempPath, w.path); err != nil {
		os.Remove(tempPath)
		return errs.IO("failed to replace manifest file", err)
	}

	w.logger.DebugWithFields("Manifest saved", map[string]interface{}{
		"path":    w.path,
		"entries": len(results),
	})

	return nil
}

// Read loads a manifest written by Writer
func Read(path string) ([]models.UploadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.IO("failed to read manifest", err)
	}

	var results []models.UploadResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, errs.Schema("failed to parse manifest", err)
	}
	return results, nil
}
