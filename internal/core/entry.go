package core

// MediaKind is the coarse classification of a shared file, used by
// clients to pick how to render it inline.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
	MediaOther MediaKind = "other"
)

// ParseMediaKind maps a wire value onto a known kind. Anything
// unrecognized collapses to MediaOther.
func ParseMediaKind(s string) MediaKind {
	switch MediaKind(s) {
	case MediaImage, MediaVideo:
		return MediaKind(s)
	default:
		return MediaOther
	}
}

// MediaRef points at an uploaded file. The upload itself happened out of
// band; the core trusts these fields as given.
type MediaRef struct {
	Kind     MediaKind
	URL      string
	Filename string
}

// Entry is one immutable unit of chat history: a text message, or a
// media reference when Media is non-nil.
type Entry struct {
	ID        int64
	Author    string
	Text      string
	Media     *MediaRef
	Timestamp string
}
