package models

// PhotoRecord is a single profile photo reduced to its largest size variant
type PhotoRecord struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"owner_id"`
	URL     string `json:"url"`
	Likes   int    `json:"likes"`
	Date    int64  `json:"date"`
	Size    string `json:"size"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// UploadResult is one manifest entry
type UploadResult struct {
	FileName string `json:"file_name"`
	Size     string `json:"size"`
}
