package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "transport with code",
			err:  Transport(502, "upload failed", nil),
			want: "transport error (code 502): upload failed",
		},
		{
			name: "schema without code",
			err:  Schema("missing response", nil),
			want: "schema error: missing response",
		},
		{
			name: "io with cause",
			err:  IO("write manifest", fs.ErrPermission),
			want: "io error: write manifest: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestTypeOfWrapped(t *testing.T) {
	err := fmt.Errorf("upload stage: %w", Transport(500, "server error", nil))

	assert.Equal(t, ErrorTypeTransport, TypeOf(err))
	assert.True(t, IsType(err, ErrorTypeTransport))
	assert.False(t, IsType(err, ErrorTypeSchema))
	assert.False(t, IsType(nil, ErrorTypeTransport))
	assert.Equal(t, ErrorType(""), TypeOf(stderrors.New("plain")))
}

func TestUnwrap(t *testing.T) {
	err := IO("write manifest", fs.ErrNotExist)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestIsSuccessStatusCode(t *testing.T) {
	assert.True(t, IsSuccessStatusCode(200))
	assert.True(t, IsSuccessStatusCode(202))
	assert.False(t, IsSuccessStatusCode(199))
	assert.False(t, IsSuccessStatusCode(409))
	assert.False(t, IsSuccessStatusCode(500))
}
