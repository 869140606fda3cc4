package vk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vkbackup/pkg/config"
	errs "vkbackup/pkg/errors"
	"vkbackup/pkg/logger"
	"vkbackup/pkg/models"
)

// Client is a VK API client limited to the photo listing the backup needs
type Client struct {
	httpClient *http.Client
	baseURL    string
	version    string
	albumID    string
	token      string
	userAgent  string
	logger     logger.Logger
}

// NewClient creates a new VK API client
func NewClient(vk config.VKConfig, httpCfg config.HTTPConfig, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
		},
		baseURL:   vk.APIURL,
		version:   vk.APIVersion,
		albumID:   vk.AlbumID,
		token:     vk.Token,
		userAgent: httpCfg.UserAgent,
		logger:    log.WithField("component", "vk"),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.version == "" {
		c.version = DefaultAPIVersion
	}
	if c.albumID == "" {
		c.albumID = ProfileAlbum
	}
	return c
}

// doRequest performs an HTTP request and logs the exchange
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      logger.RedactURL(req.URL.String()),
			"duration": duration,
		})
		return nil, errs.Transport(0, "vk request failed", err)
	}

	logger.LogRequest(c.logger, req.Method, req.URL.String(), resp.StatusCode, duration)
	return resp, nil
}

// getJSON performs a GET request and decodes the JSON body into target
func (c *Client) getJSON(ctx context.Context, url string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errs.Transport(0, "failed to create request", err)
	}

	resp, err := c.doRequest(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !errs.IsSuccessStatusCode(resp.StatusCode) {
		return errs.Transport(resp.StatusCode, fmt.Sprintf("vk returned status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.Transport(resp.StatusCode, "failed to read response body", err)
	}

	if err := json.Unmarshal(body, target); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return errs.Schema("failed to parse photos.get response", err)
	}

	return nil
}

// GetProfilePhotos lists up to count photos of ownerID's profile album,
// each reduced to its largest size variant, in API order.
func (c *Client) GetProfilePhotos(ctx context.Context, ownerID string, count int) ([]models.PhotoRecord, error) {
	url := GetPhotosURL(c.baseURL, PhotosGetParams{
		Token:   c.token,
		Version: c.version,
		OwnerID: ownerID,
		AlbumID: c.albumID,
		Count:   count,
	})

	c.logger.DebugWithFields("fetching profile photos", map[string]interface{}{
		"owner_id": ownerID,
		"count":    count,
	})

	var resp PhotosResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}

	if resp.Error != nil {
		c.logger.WarnWithFields("vk api returned an error", map[string]interface{}{
			"error_code": resp.Error.Code,
			"error_msg":  resp.Error.Message,
		})
		return nil, errs.Schema("photos.get returned an error object", resp.Error)
	}
	if resp.Response == nil {
		return nil, errs.Schema("photos.get response has no response object", nil)
	}

	records := make([]models.PhotoRecord, 0, len(resp.Response.Items))
	for i, photo := range resp.Response.Items {
		record, err := toRecord(photo)
		if err != nil {
			return nil, errs.Schema(fmt.Sprintf("photo %d at position %d", photo.ID, i), err)
		}
		records = append(records, record)
	}

	c.logger.DebugWithFields("fetched profile photos", map[string]interface{}{
		"owner_id": ownerID,
		"returned": len(records),
		"total":    resp.Response.Count,
	})

	return records, nil
}

// toRecord reduces a photo to the fields the backup keeps
func toRecord(photo Photo) (models.PhotoRecord, error) {
	size, ok := SelectLargestSize(photo.Sizes)
	if !ok {
		return models.PhotoRecord{}, fmt.Errorf("no size variants")
	}
	if photo.Likes == nil {
		return models.PhotoRecord{}, fmt.Errorf("missing likes")
	}

	return models.PhotoRecord{
		ID:      photo.ID,
		OwnerID: photo.OwnerID,
		URL:     size.URL,
		Likes:   photo.Likes.Count,
		Date:    photo.Date,
		Size:    size.Type,
		Width:   size.Width,
		Height:  size.Height,
	}, nil
}

// SelectLargestSize returns the variant with the largest height*width.
// On equal area the earliest listed variant wins.
func SelectLargestSize(sizes []Size) (Size, bool) {
	if len(sizes) == 0 {
		return Size{}, false
	}
	best := sizes[0]
	for _, s := range sizes[1:] {
		if s.Area() > best.Area() {
			best = s
		}
	}
	return best, true
}
