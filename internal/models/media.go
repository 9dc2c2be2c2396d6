package models

type MediaKind string

const (
	MediaPhoto     MediaKind = "photo"
	MediaDocument  MediaKind = "document"
	MediaVoice     MediaKind = "voice"
	MediaVideoNote MediaKind = "video_note"
	MediaVideo     MediaKind = "video"
)

// Media references an already-uploaded Telegram file by id.
type Media struct {
	Kind   MediaKind
	FileID string
}
