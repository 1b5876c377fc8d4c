package handler

import (
	"errors"
	"net/http"
	"strings"

	"societyhub/internal/model"
	"societyhub/pkg/storage"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	store *storage.DiskStore
}

func NewUploadHandler(store *storage.DiskStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload handles POST /uploads. It accepts either a multipart "file" field or
// a JSON body carrying a base64 data URL, and returns the public URL.
func (h *UploadHandler) Upload(c *gin.Context) {
	var (
		url string
		err error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.store.MultipartLimit())
		fh, ferr := c.FormFile("file")
		if ferr != nil {
			if tooLarge(ferr) {
				respondError(c, storage.ErrTooLarge)
				return
			}
			badRequest(c, "Missing file field", ferr)
			return
		}
		url, err = h.store.SaveMultipart(fh)
	} else {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.store.DataURLLimit())
		var req model.UploadRequest
		if berr := c.ShouldBindJSON(&req); berr != nil {
			if tooLarge(berr) {
				respondError(c, storage.ErrTooLarge)
				return
			}
			badRequest(c, "Invalid request body", berr)
			return
		}
		url, err = h.store.SaveDataURL(req.Data, req.Filename)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.UploadResponse{URL: url})
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large")
}
