package vk

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultBaseURL is the VK API method root
	DefaultBaseURL = "https://api.vk.com/method"

	// DefaultAPIVersion is the pinned VK API version
	DefaultAPIVersion = "5.131"

	// PhotosGetMethod lists photos of an album
	PhotosGetMethod = "photos.get"

	// ProfileAlbum is the system album holding profile photos
	ProfileAlbum = "profile"
)

// PhotosGetParams holds the query parameters for photos.get
type PhotosGetParams struct {
	Token   string
	Version string
	OwnerID string
	AlbumID string
	Count   int
}

// GetPhotosURL constructs the photos.get URL with extended metadata and size variants
func GetPhotosURL(baseURL string, p PhotosGetParams) string {
	params := url.Values{}
	params.Set("access_token", p.Token)
	params.Set("v", p.Version)
	params.Set("owner_id", p.OwnerID)
	params.Set("album_id", p.AlbumID)
	params.Set("extended", "1")
	params.Set("photo_sizes", "1")
	params.Set("count", strconv.Itoa(p.Count))

	return strings.TrimRight(baseURL, "/") + "/" + PhotosGetMethod + "?" + params.Encode()
}
