package handlers

import (
	"bytes"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ysw-crm/crm-backend/internal/httperr"
	"github.com/ysw-crm/crm-backend/internal/storage"
)

const maxAttachmentBytes = 10 << 20 // 10 MiB

type AttachmentHandler struct {
	uploader *storage.Uploader
}

func NewAttachmentHandler(uploader *storage.Uploader) *AttachmentHandler {
	return &AttachmentHandler{uploader: uploader}
}

// Upload stores one conversation attachment. PNG/JPEG uploads are
// re-encoded to WebP; everything else is stored as received.
func (h *AttachmentHandler) Upload(c *gin.Context) {
	if h.uploader == nil {
		httperr.Internal(c, "storage_not_configured", "Attachment storage is not configured.")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Multipart field 'file' is required.")
		return
	}

	if file.Size > maxAttachmentBytes {
		httperr.BadRequest(c, "file_too_large", "Attachment exceeds the size limit.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Could not read upload.")
		return
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")

	var (
		key  string
		body *bytes.Reader
	)

	if storage.IsImageContentType(contentType) {
		encoded, err := storage.ReencodeWebP(src)
		if err != nil {
			httperr.BadRequest(c, "invalid_image", "Could not decode image upload.")
			return
		}
		key = uuid.NewString() + ".webp"
		contentType = "image/webp"
		body = bytes.NewReader(encoded)
	} else {
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(src); err != nil {
			httperr.Internal(c, "failed_to_read_file", "Could not read upload.")
			return
		}
		key = uuid.NewString() + filepath.Ext(file.Filename)
		body = bytes.NewReader(buf.Bytes())
	}

	url, err := h.uploader.Upload(c.Request.Context(), key, contentType, body)
	if err != nil {
		httperr.Internal(c, "failed_to_upload", "Could not store attachment.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
