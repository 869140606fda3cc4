package vk

import "fmt"

// PhotosResponse is the photos.get envelope. Exactly one of Response or Error is set.
type PhotosResponse struct {
	Response *PhotoList `json:"response"`
	Error    *APIError  `json:"error"`
}

// PhotoList is the response object of photos.get
type PhotoList struct {
	Count int     `json:"count"`
	Items []Photo `json:"items"`
}

// Photo is a single item of photos.get with extended=1 and photo_sizes=1
type Photo struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"owner_id"`
	AlbumID int64  `json:"album_id"`
	Date    int64  `json:"date"`
	Likes   *Likes `json:"likes"`
	Sizes   []Size `json:"sizes"`
}

// Likes holds the like counter of a photo
type Likes struct {
	Count     int `json:"count"`
	UserLikes int `json:"user_likes"`
}

// Size is one resolution variant of a photo
type Size struct {
	Type   string `json:"type"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Area returns the pixel count of the variant
func (s Size) Area() int {
	return s.Width * s.Height
}

// APIError is the error object VK returns with HTTP 200
type APIError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_msg"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vk api error %d: %s", e.Code, e.Message)
}
