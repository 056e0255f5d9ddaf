// Package media stores uploaded blobs on disk and classifies them for
// inline rendering. The chat core never touches this package directly:
// clients upload first, then reference the returned URL over the
// WebSocket protocol.
package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// ErrTooLarge is returned by Save when the blob exceeds the size limit.
var ErrTooLarge = errors.New("file exceeds upload size limit")

// Upload describes a stored blob.
type Upload struct {
	URL        string // public path, e.g. /uploads/1693390000000.png
	Filename   string // original client-side name
	StoredName string
	Kind       string // image, video or other
	Size       int64
}

// Store writes uploads into a single directory. Stored names are the
// upload time in milliseconds plus the original extension, which keeps
// them unique enough and avoids trusting client-supplied names.
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore creates the upload directory if needed.
func NewStore(dir string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes}, nil
}

// Save persists the blob and returns its reference. The content is
// sniffed for its media kind; the client-declared type is ignored.
func (s *Store) Save(filename string, r io.Reader) (*Upload, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrTooLarge
	}

	stored := strconv.FormatInt(time.Now().UnixMilli(), 10) + sanitizeExt(filename)
	if err := os.WriteFile(filepath.Join(s.dir, stored), data, 0o644); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}

	return &Upload{
		URL:        "/uploads/" + stored,
		Filename:   filename,
		StoredName: stored,
		Kind:       KindOf(mimetype.Detect(data).String()),
		Size:       int64(len(data)),
	}, nil
}

// Dir returns the directory uploads are written to.
func (s *Store) Dir() string {
	return s.dir
}

// KindOf collapses a MIME type into the coarse kind the chat protocol
// uses: image, video or other.
func KindOf(mime string) string {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return "image"
	case strings.HasPrefix(mime, "video/"):
		return "video"
	default:
		return "other"
	}
}

// sanitizeExt keeps only a plain extension from the original name so a
// hostile filename cannot influence the stored path.
func sanitizeExt(filename string) string {
	ext := filepath.Ext(filepath.Base(filename))
	if ext == "." || strings.ContainsAny(ext, `/\`) {
		return ""
	}
	return ext
}
