package vk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vkbackup/pkg/config"
	errs "vkbackup/pkg/errors"
	"vkbackup/pkg/logger"
)

// mockRoundTripper allows us to intercept HTTP requests
type mockRoundTripper struct {
	handler func(req *http.Request) (*http.Response, error)
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.handler(req)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *logger.TestLogger) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logger.NewTestLogger()
	cfg := config.DefaultConfig()
	cfg.VK.APIURL = server.URL
	cfg.VK.Token = "vk-secret"
	return NewClient(cfg.VK, cfg.HTTP, log), log
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, body)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(config.VKConfig{}, config.HTTPConfig{}, logger.NewNopLogger())

	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultAPIVersion, c.version)
	assert.Equal(t, ProfileAlbum, c.albumID)
	assert.Zero(t, c.httpClient.Timeout)
}

func TestGetProfilePhotosRequest(t *testing.T) {
	var got *http.Request
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		writeJSON(w, `{"response":{"count":0,"items":[]}}`)
	})

	records, err := c.GetProfilePhotos(context.Background(), "12345", 3)
	require.NoError(t, err)
	assert.Empty(t, records)

	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/photos.get", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, "vk-secret", q.Get("access_token"))
	assert.Equal(t, "5.131", q.Get("v"))
	assert.Equal(t, "12345", q.Get("owner_id"))
	assert.Equal(t, "profile", q.Get("album_id"))
	assert.Equal(t, "1", q.Get("extended"))
	assert.Equal(t, "1", q.Get("photo_sizes"))
	assert.Equal(t, "3", q.Get("count"))
	assert.Equal(t, "vkbackup/1.0", got.Header.Get("User-Agent"))
}

func TestGetProfilePhotosSelectsLargestAndKeepsOrder(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"response":{"count":3,"items":[
			{"id":1,"owner_id":7,"date":1600000000,"likes":{"count":10},"sizes":[
				{"type":"s","url":"https://cdn/1s","height":100,"width":100},
				{"type":"z","url":"https://cdn/1z","height":50,"width":400}]},
			{"id":2,"owner_id":7,"date":1600000100,"likes":{"count":42},"sizes":[
				{"type":"x","url":"https://cdn/2x","height":604,"width":453}]},
			{"id":3,"owner_id":7,"date":1600000200,"likes":{"count":0},"sizes":[
				{"type":"m","url":"https://cdn/3m","height":130,"width":97}]}
		]}}`)
	})

	records, err := c.GetProfilePhotos(context.Background(), "7", 3)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "https://cdn/1z", records[0].URL)
	assert.Equal(t, "z", records[0].Size)
	assert.Equal(t, 10, records[0].Likes)
	assert.Equal(t, int64(1600000000), records[0].Date)
	assert.Equal(t, 400, records[0].Width)

	assert.Equal(t, int64(2), records[1].ID)
	assert.Equal(t, 42, records[1].Likes)
	assert.Equal(t, int64(3), records[2].ID)
	assert.Equal(t, 0, records[2].Likes)
}

func TestGetProfilePhotosErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantType errs.ErrorType
		wantCode int
	}{
		{name: "server error", status: 500, body: "oops", wantType: errs.ErrorTypeTransport, wantCode: 500},
		{name: "unauthorized", status: 401, body: "", wantType: errs.ErrorTypeTransport, wantCode: 401},
		{name: "invalid json", status: 200, body: "{not json", wantType: errs.ErrorTypeSchema},
		{name: "missing response", status: 200, body: `{}`, wantType: errs.ErrorTypeSchema},
		{name: "vk error object", status: 200, body: `{"error":{"error_code":5,"error_msg":"User authorization failed"}}`, wantType: errs.ErrorTypeSchema},
		{name: "no sizes", status: 200, body: `{"response":{"count":1,"items":[{"id":9,"likes":{"count":1},"sizes":[]}]}}`, wantType: errs.ErrorTypeSchema},
		{name: "no likes", status: 200, body: `{"response":{"count":1,"items":[{"id":9,"sizes":[{"type":"x","url":"u","height":1,"width":1}]}]}}`, wantType: errs.ErrorTypeSchema},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			records, err := c.GetProfilePhotos(context.Background(), "1", 5)
			require.Error(t, err)
			assert.Nil(t, records)
			assert.Equal(t, tt.wantType, errs.TypeOf(err))

			var e *errs.Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, tt.wantCode, e.Code)
		})
	}
}

func TestGetProfilePhotosVKErrorCarriesDetails(t *testing.T) {
	c, log := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"error":{"error_code":30,"error_msg":"This profile is private"}}`)
	})

	_, err := c.GetProfilePhotos(context.Background(), "1", 5)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 30, apiErr.Code)
	assert.Contains(t, err.Error(), "This profile is private")
	assert.Len(t, log.GetMessagesByLevel("WARN"), 1)
}

func TestGetProfilePhotosNetworkError(t *testing.T) {
	c := NewClient(config.VKConfig{Token: "t"}, config.HTTPConfig{}, logger.NewNopLogger())
	c.httpClient = &http.Client{Transport: &mockRoundTripper{
		handler: func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		},
	}}

	_, err := c.GetProfilePhotos(context.Background(), "1", 5)
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypeTransport))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGetProfilePhotosDoesNotLogToken(t *testing.T) {
	c, log := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"response":{"count":0,"items":[]}}`)
	})

	_, err := c.GetProfilePhotos(context.Background(), "1", 1)
	require.NoError(t, err)

	for _, msg := range log.GetMessages() {
		for _, v := range msg.Fields {
			assert.NotContains(t, fmt.Sprint(v), "vk-secret")
		}
	}
}

func TestGetProfilePhotosContextCanceled(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"response":{"count":0,"items":[]}}`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetProfilePhotos(ctx, "1", 1)
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypeTransport))
	assert.ErrorIs(t, err, context.Canceled)
}
