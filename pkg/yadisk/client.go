package yadisk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vkbackup/pkg/config"
	errs "vkbackup/pkg/errors"
	"vkbackup/pkg/logger"
)

// DefaultBaseURL is the Yandex Disk resources endpoint
const DefaultBaseURL = "https://cloud-api.yandex.net/v1/disk/resources"

// maxErrorBody bounds how much of an error response is kept in the error message
const maxErrorBody = 512

// Client talks to the Yandex Disk REST API with an OAuth token
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
	logger     logger.Logger
}

// NewClient creates a new Yandex Disk client
func NewClient(disk config.DiskConfig, httpCfg config.HTTPConfig, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	baseURL := strings.TrimRight(disk.APIURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
		},
		baseURL:   baseURL,
		token:     disk.Token,
		userAgent: httpCfg.UserAgent,
		logger:    log.WithField("component", "yadisk"),
	}
}

// do sends an authorized request without a body and returns the response status.
// The body is drained and closed; for non-2xx responses its prefix is returned too.
func (c *Client) do(ctx context.Context, method, rawURL string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, "", errs.Transport(0, "failed to create request", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   method,
			"url":      logger.RedactURL(rawURL),
			"duration": duration,
		})
		return 0, "", errs.Transport(0, fmt.Sprintf("%s request failed", method), err)
	}
	defer resp.Body.Close()

	logger.LogRequest(c.logger, method, rawURL, resp.StatusCode, duration)

	var detail string
	if !errs.IsSuccessStatusCode(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		detail = strings.TrimSpace(string(body))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, detail, nil
}

// CreateFolder asks Yandex Disk to create the folder at path.
// The returned status is informational: 201 means created and 409 means it
// already exists. Only a failure to get any response is an error.
func (c *Client) CreateFolder(ctx context.Context, path string) (int, error) {
	rawURL := c.baseURL + "?" + url.Values{"path": {path}}.Encode()

	status, _, err := c.do(ctx, http.MethodPut, rawURL)
	if err != nil {
		return 0, err
	}

	c.logger.DebugWithFields("folder create requested", map[string]interface{}{
		"path":   path,
		"status": status,
	})
	return status, nil
}

// UploadFromURL asks Yandex Disk to fetch sourceURL and store it at path.
// Any non-2xx answer is a transport error.
func (c *Client) UploadFromURL(ctx context.Context, path, sourceURL string) error {
	rawURL := c.baseURL + "/upload?" + url.Values{
		"path": {path},
		"url":  {sourceURL},
	}.Encode()

	status, detail, err := c.do(ctx, http.MethodPost, rawURL)
	if err != nil {
		return err
	}
	if !errs.IsSuccessStatusCode(status) {
		msg := fmt.Sprintf("upload of %s rejected with status %d", path, status)
		if detail != "" {
			msg += ": " + detail
		}
		return errs.Transport(status, msg, nil)
	}

	c.logger.DebugWithFields("upload accepted", map[string]interface{}{
		"path":   path,
		"status": status,
	})
	return nil
}
