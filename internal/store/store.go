package store

import (
	"context"
	"time"
)

// Upload is a persisted record of a file shared in the room. Chat
// history itself is process-lifetime only; upload metadata survives
// restarts alongside the blobs on disk.
type Upload struct {
	ID         int64
	Filename   string // original client-side name
	StoredName string // name under the uploads directory
	Kind       string // image, video or other
	Size       int64
	CreatedAt  time.Time
}

// Store persists upload metadata.
type Store interface {
	RecordUpload(ctx context.Context, u *Upload) (*Upload, error)
	RecentUploads(ctx context.Context, limit int) ([]Upload, error)
	Close() error
}
