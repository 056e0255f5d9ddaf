package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/huddle-server/internal/media"
	"github.com/vovakirdan/huddle-server/internal/store"
)

// UploadHandlers accepts file uploads and records their metadata. The
// response hands back the reference the client then shares over the
// WebSocket protocol as a send_file frame.
type UploadHandlers struct {
	media   *media.Store
	store   store.Store
	limiter *rateLimiter
	log     *zerolog.Logger
}

// NewUploadHandlers creates a new upload handlers instance. ratePerMinute
// bounds accepted uploads per minute across all clients; 0 disables the limit.
func NewUploadHandlers(m *media.Store, st store.Store, ratePerMinute int, logger *zerolog.Logger) *UploadHandlers {
	return &UploadHandlers{media: m, store: st, limiter: newRateLimiter(ratePerMinute), log: logger}
}

// UploadResult is the upload endpoint's response body.
type UploadResult struct {
	Success  bool   `json:"success"`
	URL      string `json:"url,omitempty"`
	Filename string `json:"filename,omitempty"`
	Type     string `json:"type,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Upload stores a multipart file and returns its reference.
// POST /upload
func (h *UploadHandlers) Upload(c *gin.Context) {
	if !h.limiter.allow() {
		c.JSON(http.StatusTooManyRequests, UploadResult{Success: false, Error: "too many uploads, slow down"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, UploadResult{Success: false, Error: "no file uploaded"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("failed to open upload")
		c.JSON(http.StatusInternalServerError, UploadResult{Success: false, Error: "internal server error"})
		return
	}
	defer src.Close()

	upload, err := h.media.Save(fileHeader.Filename, src)
	if err != nil {
		if errors.Is(err, media.ErrTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, UploadResult{Success: false, Error: "file too large"})
			return
		}
		h.log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("failed to store upload")
		c.JSON(http.StatusInternalServerError, UploadResult{Success: false, Error: "internal server error"})
		return
	}

	// Metadata is best-effort: the blob is already on disk and usable.
	if _, err := h.store.RecordUpload(c.Request.Context(), &store.Upload{
		Filename:   upload.Filename,
		StoredName: upload.StoredName,
		Kind:       upload.Kind,
		Size:       upload.Size,
	}); err != nil {
		h.log.Warn().Err(err).Str("stored_name", upload.StoredName).Msg("failed to record upload metadata")
	}

	h.log.Info().
		Str("filename", upload.Filename).
		Str("kind", upload.Kind).
		Int64("size", upload.Size).
		Msg("file uploaded")

	c.JSON(http.StatusOK, UploadResult{
		Success:  true,
		URL:      upload.URL,
		Filename: upload.Filename,
		Type:     upload.Kind,
	})
}
