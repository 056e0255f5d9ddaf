package http

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/huddle-server/internal/config"
	"github.com/vovakirdan/huddle-server/internal/core"
	"github.com/vovakirdan/huddle-server/internal/media"
	"github.com/vovakirdan/huddle-server/internal/store/sqlite"
)

// startTestServer brings up the full HTTP surface against a running hub,
// a temp upload directory and an in-memory metadata store.
func startTestServer(t *testing.T) (*httptest.Server, *core.Hub) {
	t.Helper()

	cfg := config.Default()
	cfg.Addr = ":0"
	cfg.ReadHeaderTimeout = time.Second
	cfg.ShutdownTimeout = time.Second
	cfg.UploadDir = filepath.Join(t.TempDir(), "uploads")
	cfg.StaticDir = "" // no frontend build in tests

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	uploads, err := media.NewStore(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		t.Fatalf("create media store: %v", err)
	}

	disabledLogger := zerolog.Nop()

	hub := core.NewHub(cfg.MaxUsers, cfg.HistoryReplay, &disabledLogger)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	server := NewServer(hub, uploads, st, &cfg, &disabledLogger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts, hub
}
