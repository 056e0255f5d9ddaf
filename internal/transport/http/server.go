package http

import (
	stdhttp "net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/huddle-server/internal/config"
	"github.com/vovakirdan/huddle-server/internal/core"
	"github.com/vovakirdan/huddle-server/internal/media"
	"github.com/vovakirdan/huddle-server/internal/store"
)

// NewServer builds the HTTP server: WebSocket endpoint, REST reads,
// the upload endpoint, and static serving for the frontend and the
// uploaded files.
func NewServer(hub *core.Hub, uploads *media.Store, st store.Store, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	api := NewAPIHandlers(hub, st, cfg, logger)
	up := NewUploadHandlers(uploads, st, cfg.UploadsPerMinute, logger)

	router.GET("/healthz", healthHandler)
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, logger)))

	router.GET("/api/users-count", api.UsersCount)
	router.GET("/api/messages", api.Messages)
	router.GET("/api/uploads", api.RecentUploads)

	router.POST("/upload", up.Upload)
	router.Static("/uploads", uploads.Dir())

	// Frontend assets, when a build is present.
	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		router.NoRoute(gin.WrapH(stdhttp.FileServer(stdhttp.Dir(cfg.StaticDir))))
	}

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
