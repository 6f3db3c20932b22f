package domain

import "time"

type ContentType string

const (
	ContentTypeDocument ContentType = "structured_document"
	ContentTypeVideo    ContentType = "video_transcript"
	ContentTypeAudio    ContentType = "audio_podcast"
)

// RawItem is an inbound message as delivered by the source, before extraction.
type RawItem struct {
	ExternalID string
	Subject    string
	Sender     string
	Date       time.Time
	HTMLBody   string
	TextBody   string
}

// SearchText is the text the classifier scans: subject and every body representation.
func (r RawItem) SearchText() string {
	return r.Subject + " " + r.TextBody + " " + r.HTMLBody
}

type InboundItem struct {
	ID          int64       `db:"id"`
	ExternalID  string      `db:"external_id"`
	ContentType ContentType `db:"content_type"`
	Origin      string      `db:"origin"`
	Title       string      `db:"title"`
	RawText     string      `db:"raw_text"`
	URL         *string     `db:"url"`
	OriginAt    time.Time   `db:"origin_at"`
	IngestedAt  time.Time   `db:"ingested_at"`
}

type IngestState struct {
	ID            int64     `db:"id"`
	SourceID      string    `db:"source_id"`
	LastRunAt     time.Time `db:"last_run_at"`
	TotalIngested int64     `db:"total_ingested"`
}
