package logger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "access token hidden",
			in:   "https://api.vk.com/method/photos.get?access_token=secret&owner_id=1",
			want: "https://api.vk.com/method/photos.get?access_token=REDACTED&owner_id=1",
		},
		{
			name: "no secrets unchanged",
			in:   "https://cloud-api.yandex.net/v1/disk/resources?path=VK_Photos_1",
			want: "https://cloud-api.yandex.net/v1/disk/resources?path=VK_Photos_1",
		},
		{
			name: "unparseable unchanged",
			in:   "://bad",
			want: "://bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RedactURL(tt.in))
		})
	}
}

func TestLogRequestLevels(t *testing.T) {
	log := NewTestLogger()

	LogRequest(log, "GET", "https://x/?access_token=t", 200, time.Millisecond)
	LogRequest(log, "POST", "https://x/upload", 409, time.Millisecond)
	LogRequest(log, "PUT", "https://x/", 503, time.Millisecond)

	msgs := log.GetMessages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "DEBUG", msgs[0].Level)
	assert.Equal(t, "https://x/?access_token=REDACTED", msgs[0].Fields["url"])
	assert.Equal(t, "WARN", msgs[1].Level)
	assert.Equal(t, "ERROR", msgs[2].Level)
}

func TestLogUpload(t *testing.T) {
	log := NewTestLogger()

	LogUpload(log, "10.jpg", "z", nil)
	LogUpload(log, "11.jpg", "y", errors.New("rejected"))

	assert.True(t, log.HasMessage("Upload accepted"))
	errs := log.GetMessagesByLevel("ERROR")
	require.Len(t, errs, 1)
	assert.Equal(t, "11.jpg", errs[0].Fields["file_name"])
	assert.EqualError(t, errs[0].Error, "rejected")
}

func TestTestLoggerSharesStore(t *testing.T) {
	log := NewTestLogger()
	child := log.WithField("a", 1)
	child.Info("from child")

	assert.True(t, log.HasMessage("from child"))
	log.Clear()
	assert.Empty(t, log.GetMessages())
	assert.False(t, log.HasError())
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()
	log.WithField("k", "v").WithError(errors.New("x")).Info("ignored")
	assert.Nil(t, log.GetZerolog())
}
