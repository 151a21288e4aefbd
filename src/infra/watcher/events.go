package watcher

import "time"

// DirEventType represents the type of directory event.
type DirEventType string

const (
	DirChanged DirEventType = "changed"
)

// DirEvent is emitted when the contents of a watched directory change.
// Path is the watched directory, not the individual file that triggered
// the event.
type DirEvent struct {
	Path      string       `json:"path"`
	EventType DirEventType `json:"event_type"`
	Timestamp time.Time    `json:"timestamp"`
}
