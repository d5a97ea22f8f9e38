package websocket

import (
	"log"

	"github.com/turnover-manager/backend/internal/storage/models"
)

// EventBroadcaster handles broadcasting sync events to connected clients.
type EventBroadcaster struct {
	hub *Hub
}

// NewEventBroadcaster creates a new event broadcaster.
func NewEventBroadcaster(hub *Hub) *EventBroadcaster {
	return &EventBroadcaster{hub: hub}
}

// BroadcastSyncCompleted sends a sync completed event.
func (b *EventBroadcaster) BroadcastSyncCompleted(result models.SyncResult) {
	payload := SyncCompletedPayload{
		PropertyID:    result.PropertyID,
		Address:       result.Address,
		EventsFound:   result.EventsFound,
		BookingsFound: result.BookingsFound,
		JobsCreated:   result.JobsCreated,
		SyncedAt:      result.SyncedAt,
	}

	b.broadcast(NewMessage(TypeSyncCompleted, payload))
}

// BroadcastSyncError sends a sync error event.
func (b *EventBroadcaster) BroadcastSyncError(propertyID, address string, err error) {
	payload := SyncErrorPayload{
		PropertyID: propertyID,
		Address:    address,
		Message:    err.Error(),
	}

	b.broadcast(NewMessage(TypeSyncError, payload))
}

// BroadcastJobsRemoved sends a jobs.removed event.
func (b *EventBroadcaster) BroadcastJobsRemoved(address string, deleted int) {
	payload := JobsRemovedPayload{
		Address: address,
		Deleted: deleted,
	}

	b.broadcast(NewMessage(TypeJobsRemoved, payload))
}

// BroadcastNotification sends a notification to all connected clients.
func (b *EventBroadcaster) BroadcastNotification(level, title, message string) {
	payload := NotificationPayload{
		Level:   level,
		Title:   title,
		Message: message,
	}

	b.broadcast(NewMessage(TypeNotification, payload))
}

func (b *EventBroadcaster) broadcast(msg Message) {
	data, err := msg.JSON()
	if err != nil {
		log.Printf("Error encoding WebSocket message: %v", err)
		return
	}

	b.hub.Broadcast(data)
}
