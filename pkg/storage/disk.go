package storage

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"societyhub/pkg/timer"

	"github.com/google/uuid"
)

var (
	ErrInvalidDataURL  = errors.New("invalid data url")
	ErrTooLarge        = errors.New("file exceeds the upload size limit")
	ErrEmpty           = errors.New("file is empty")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// DiskStore writes uploads under Dir and returns URLs under BaseURL.
type DiskStore struct {
	Dir      string
	BaseURL  string
	MaxBytes int64
}

func NewDiskStore(dir, baseURL string, maxBytes int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &DiskStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/"), MaxBytes: maxBytes}, nil
}

// DataURLLimit bounds a request body carrying a base64 data URL of at most
// MaxBytes decoded bytes, plus room for the JSON envelope.
func (s *DiskStore) DataURLLimit() int64 {
	return int64(base64.StdEncoding.EncodedLen(int(s.MaxBytes))) + 4096
}

// MultipartLimit bounds a multipart request carrying one file of at most
// MaxBytes.
func (s *DiskStore) MultipartLimit() int64 {
	return s.MaxBytes + 64<<10
}

// SaveDataURL decodes "data:<mime>;base64,<payload>" and stores it.
func (s *DiskStore) SaveDataURL(dataURL, filename string) (string, error) {
	defer timer.Track("SaveDataURL")()

	header, payload, ok := strings.Cut(strings.TrimSpace(dataURL), ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return "", ErrInvalidDataURL
	}
	contentType := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")

	if int64(base64.StdEncoding.DecodedLen(len(payload))) > s.MaxBytes+2 {
		return "", ErrTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return s.write(bytes.NewReader(data), contentType, filename)
}

// SaveMultipart stores an uploaded form file.
func (s *DiskStore) SaveMultipart(fh *multipart.FileHeader) (string, error) {
	defer timer.Track("SaveMultipart")()

	if fh.Size > s.MaxBytes {
		return "", ErrTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()
	return s.write(f, fh.Header.Get("Content-Type"), fh.Filename)
}

func (s *DiskStore) write(r io.Reader, contentType, filename string) (string, error) {
	// read one byte past the limit to detect oversize bodies
	data, err := io.ReadAll(io.LimitReader(r, s.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if int64(len(data)) > s.MaxBytes {
		return "", ErrTooLarge
	}

	ext, err := extension(contentType, filename, data)
	if err != nil {
		return "", err
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return s.BaseURL + "/" + name, nil
}

// allowedTypes maps accepted content types to the extension files are
// stored under. Anything else is rejected so /uploads never serves markup.
var allowedTypes = map[string]string{
	"image/jpeg":               ".jpg",
	"image/png":                ".png",
	"image/gif":                ".gif",
	"image/webp":               ".webp",
	"application/pdf":          ".pdf",
	"text/plain":               ".txt",
	"text/csv":                 ".csv",
	"application/msword":       ".doc",
	"application/vnd.ms-excel": ".xls",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       ".xlsx",
}

var allowedExts = func() map[string]bool {
	exts := map[string]bool{".jpeg": true}
	for _, ext := range allowedTypes {
		exts[ext] = true
	}
	return exts
}()

// extension prefers an accepted extension from the client's filename, then
// the declared content type, then the sniffed one.
func extension(contentType, filename string, data []byte) (string, error) {
	if filename != "" {
		if ext := strings.ToLower(filepath.Ext(filepath.Base(filename))); allowedExts[ext] {
			return ext, nil
		}
	}
	if contentType != "" && contentType != "application/octet-stream" {
		if ext, ok := extensionForType(contentType); ok {
			return ext, nil
		}
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	sniffed := http.DetectContentType(data)
	if ext, ok := extensionForType(sniffed); ok {
		return ext, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, sniffed)
}

func extensionForType(contentType string) (string, bool) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", false
	}
	ext, ok := allowedTypes[mt]
	return ext, ok
}
