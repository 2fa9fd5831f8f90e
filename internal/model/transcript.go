package model

// TranscriptEventType distinguishes utterances from structured field updates.
type TranscriptEventType string

const (
	TranscriptText   TranscriptEventType = "text"
	TranscriptUpdate TranscriptEventType = "update"
)

// TranscriptEvent is one entry of the ordered consultation log. Text events
// carry Content; update events carry Field and Value. Timestamp is kept as
// the caller sent it (RFC 3339 or a display time such as "14:03:22") and is
// never interpreted.
type TranscriptEvent struct {
	Type      TranscriptEventType `json:"type" yaml:"type"`
	Content   string              `json:"content,omitempty" yaml:"content,omitempty"`
	Field     string              `json:"field,omitempty" yaml:"field,omitempty"`
	Value     any                 `json:"value,omitempty" yaml:"value,omitempty"`
	Timestamp string              `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}
