package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	ThumbnailGenerated = "thumbnail.generated"
	ThumbnailFailed    = "thumbnail.failed"
	ThumbnailDeleted   = "thumbnail.deleted"
)

// Event is one thumbnail lifecycle notification.
type Event struct {
	Type        string                 `json:"type"`
	ThumbnailID uuid.UUID              `json:"thumbnail_id"`
	UserID      uuid.UUID              `json:"user_id"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
	OccurredAt  time.Time              `json:"occurred_at"`
}

// Publisher delivers lifecycle events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

func New(eventType string, thumbnailID, userID uuid.UUID, payload map[string]interface{}) Event {
	return Event{
		Type:        eventType,
		ThumbnailID: thumbnailID,
		UserID:      userID,
		Payload:     payload,
		OccurredAt:  time.Now().UTC(),
	}
}

// Event payloads
func GeneratedPayload(model, imageURL string) map[string]interface{} {
	return map[string]interface{}{
		"status":    "succeeded",
		"model":     model,
		"image_url": imageURL,
	}
}

func FailedPayload(errorMsg string) map[string]interface{} {
	return map[string]interface{}{
		"status": "failed",
		"error":  errorMsg,
	}
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
