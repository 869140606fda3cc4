package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	errs "vkbackup/pkg/errors"
	"vkbackup/pkg/logger"
	"vkbackup/pkg/models"
)

func TestWriteFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	w := NewWriter(path, logger.NewNopLogger())

	err := w.Write([]models.UploadResult{
		{FileName: "10.jpg", Size: "z"},
		{FileName: "42.jpg", Size: "x"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := `[
    {
        "file_name": "10.jpg",
        "size": "z"
    },
    {
        "file_name": "42.jpg",
        "size": "x"
    }
]
`
	assert.Equal(t, want, string(data))
}

func TestWriteEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	w := NewWriter(path, logger.NewNopLogger())

	require.NoError(t, w.Write(nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer than the new one"), 0644))

	w := NewWriter(path, logger.NewNopLogger())
	require.NoError(t, w.Write([]models.UploadResult{{FileName: "1.jpg", Size: "s"}}))

	results, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []models.UploadResult{{FileName: "1.jpg", Size: "s"}}, results)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "result.json")
	w := NewWriter(path, logger.NewNopLogger())

	err := w.Write([]models.UploadResult{{FileName: "1.jpg", Size: "s"}})
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypeIO))

	_, statErr := os.Stat(filepath.Dir(path))
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteNoHTMLEscaping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	w := NewWriter(path, logger.NewNopLogger())

	require.NoError(t, w.Write([]models.UploadResult{{FileName: "a&b<c>.jpg", Size: "x"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"a&b<c>.jpg"`)
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(filepath.Join(dir, "nope.json"))
	assert.True(t, errs.IsType(err, errs.ErrorTypeIO))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	_, err = Read(bad)
	assert.True(t, errs.IsType(err, errs.ErrorTypeSchema))
}
