package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/huddle-server/internal/config"
	"github.com/vovakirdan/huddle-server/internal/core"
	"github.com/vovakirdan/huddle-server/internal/store"
)

// APIHandlers provides the REST read endpoints. They never mutate the
// room: both queries go through the hub's serialized loop.
type APIHandlers struct {
	hub        *core.Hub
	store      store.Store
	queryCount int
	log        *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(hub *core.Hub, st store.Store, cfg *config.Config, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		hub:        hub,
		store:      st,
		queryCount: cfg.HistoryQuery,
		log:        logger,
	}
}

// UsersCountResponse reports room occupancy.
type UsersCountResponse struct {
	Count int `json:"count"`
	Max   int `json:"max"`
}

// UploadResponse represents one upload record in API responses.
type UploadResponse struct {
	ID        int64  `json:"id"`
	Filename  string `json:"filename"`
	URL       string `json:"url"`
	Kind      string `json:"kind"`
	Size      int64  `json:"size"`
	CreatedAt string `json:"created_at"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UsersCount reports how many members are connected and the room limit.
// GET /api/users-count
func (h *APIHandlers) UsersCount(c *gin.Context) {
	count, max, err := h.hub.Stats(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to query occupancy")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "room unavailable"})
		return
	}
	c.JSON(http.StatusOK, UsersCountResponse{Count: count, Max: max})
}

// Messages returns the most recent chat entries, oldest first.
// GET /api/messages
func (h *APIHandlers) Messages(c *gin.Context) {
	entries, err := h.hub.RecentEntries(c.Request.Context(), h.queryCount)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to query history")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "room unavailable"})
		return
	}
	c.JSON(http.StatusOK, entriesToData(entries))
}

// RecentUploads lists recently shared files, newest first.
// GET /api/uploads
func (h *APIHandlers) RecentUploads(c *gin.Context) {
	uploads, err := h.store.RecentUploads(c.Request.Context(), 50)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list uploads")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	out := make([]UploadResponse, 0, len(uploads))
	for _, u := range uploads {
		out = append(out, UploadResponse{
			ID:        u.ID,
			Filename:  u.Filename,
			URL:       "/uploads/" + u.StoredName,
			Kind:      u.Kind,
			Size:      u.Size,
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}
