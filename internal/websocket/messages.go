package websocket

import (
	"encoding/json"
	"time"
)

// MessageType identifies the type of WebSocket message.
type MessageType string

const (
	// Server -> Client event types
	TypeSyncCompleted MessageType = "sync.completed"
	TypeSyncError     MessageType = "sync.error"
	TypeJobsRemoved   MessageType = "jobs.removed"
	TypeNotification  MessageType = "notification"
)

// Message represents a WebSocket message envelope.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(msgType MessageType, payload any) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// JSON serializes the message to JSON bytes.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// SyncCompletedPayload is the payload for sync.completed events.
type SyncCompletedPayload struct {
	PropertyID    string    `json:"property_id"`
	Address       string    `json:"address"`
	EventsFound   int       `json:"events_found"`
	BookingsFound int       `json:"bookings_found"`
	JobsCreated   int       `json:"jobs_created"`
	SyncedAt      time.Time `json:"synced_at"`
}

// SyncErrorPayload is the payload for sync.error events.
type SyncErrorPayload struct {
	PropertyID string `json:"property_id"`
	Address    string `json:"address"`
	Message    string `json:"message"`
}

// JobsRemovedPayload is the payload for jobs.removed events, sent when a
// calendar is unlinked or a property is deleted.
type JobsRemovedPayload struct {
	Address string `json:"address"`
	Deleted int    `json:"deleted"`
}

// NotificationPayload is the payload for notification events.
type NotificationPayload struct {
	Level   string `json:"level"` // info, warning, error, success
	Title   string `json:"title"`
	Message string `json:"message"`
}
