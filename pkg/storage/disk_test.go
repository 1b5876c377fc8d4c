package storage

import (
	"bytes"
	"encoding/base64"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, max int64) *DiskStore {
	t.Helper()
	s, err := NewDiskStore(t.TempDir(), "/uploads/", max)
	require.NoError(t, err)
	return s
}

func TestSaveDataURL(t *testing.T) {
	s := newStore(t, 1024)
	payload := base64.StdEncoding.EncodeToString([]byte("hello agreement"))

	url, err := s.SaveDataURL("data:text/plain;base64,"+payload, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".txt"))

	stored, err := os.ReadFile(filepath.Join(s.Dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "hello agreement", string(stored))

	url, err = s.SaveDataURL("data:application/pdf;base64,"+payload, "lease.PDF")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".pdf"))
}

func TestSaveDataURL_Rejects(t *testing.T) {
	s := newStore(t, 8)

	_, err := s.SaveDataURL("not a data url", "")
	assert.ErrorIs(t, err, ErrInvalidDataURL)

	_, err = s.SaveDataURL("data:text/plain;base64,@@@", "")
	assert.ErrorIs(t, err, ErrInvalidDataURL)

	big := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("x"), 64))
	_, err = s.SaveDataURL("data:text/plain;base64,"+big, "")
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = s.SaveDataURL("data:text/plain;base64,", "")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestSaveMultipart(t *testing.T) {
	s := newStore(t, 1024)

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", "gate.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\nrest"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	url, err := s.SaveMultipart(req.MultipartForm.File["file"][0])
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".png"))
}

func TestExtension(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nrest")

	tests := []struct {
		name        string
		contentType string
		filename    string
		data        []byte
		want        string
		wantErr     error
	}{
		{name: "declared type without filename", contentType: "image/png", data: png, want: ".png"},
		{name: "accepted filename extension", contentType: "application/pdf", filename: "lease.PDF", want: ".pdf"},
		{name: "jpeg filename kept", contentType: "image/jpeg", filename: "gate.jpeg", want: ".jpeg"},
		{name: "unknown filename falls back to type", contentType: "image/png", filename: "gate.html", data: png, want: ".png"},
		{name: "parameters on type", contentType: "text/plain; charset=utf-8", want: ".txt"},
		{name: "octet stream is sniffed", contentType: "application/octet-stream", data: png, want: ".png"},
		{name: "markup rejected", contentType: "text/html", filename: "x.html", wantErr: ErrUnsupportedType},
		{name: "sniffed markup rejected", data: []byte("<html><body>hi</body></html>"), wantErr: ErrUnsupportedType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extension(tt.contentType, tt.filename, tt.data)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestLimits(t *testing.T) {
	s := newStore(t, 3)
	assert.Equal(t, int64(4+4096), s.DataURLLimit())
	assert.Equal(t, int64(3+64<<10), s.MultipartLimit())
}
