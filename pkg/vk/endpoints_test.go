package vk

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPhotosURL(t *testing.T) {
	raw := GetPhotosURL("https://api.vk.com/method/", PhotosGetParams{
		Token:   "tok",
		Version: "5.131",
		OwnerID: "-42",
		AlbumID: ProfileAlbum,
		Count:   5,
	})

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "api.vk.com", u.Host)
	assert.Equal(t, "/method/photos.get", u.Path)
	assert.Equal(t, "-42", u.Query().Get("owner_id"))
	assert.Equal(t, "5", u.Query().Get("count"))
}

func TestSelectLargestSize(t *testing.T) {
	tests := []struct {
		name     string
		sizes    []Size
		wantType string
		wantOK   bool
	}{
		{
			name:     "larger area wins over taller",
			sizes:    []Size{{Type: "a", Height: 100, Width: 100}, {Type: "b", Height: 50, Width: 400}},
			wantType: "b",
			wantOK:   true,
		},
		{
			name:     "tie keeps first listed",
			sizes:    []Size{{Type: "first", Height: 10, Width: 20}, {Type: "second", Height: 20, Width: 10}},
			wantType: "first",
			wantOK:   true,
		},
		{
			name:     "single variant",
			sizes:    []Size{{Type: "x", Height: 1, Width: 1}},
			wantType: "x",
			wantOK:   true,
		},
		{
			name:   "empty",
			sizes:  nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectLargestSize(tt.sizes)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantType, got.Type)
		})
	}
}
