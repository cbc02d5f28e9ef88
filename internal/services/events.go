package services

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// EventPublisher delivers domain events to a message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// Event is the JSON body of every published domain event.
type Event struct {
	Type       string    `json:"type"`
	RecipeID   string    `json:"recipe_id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	AuthorID   string    `json:"author_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// publishEvent sends event if a publisher is configured. Failures are logged
// and never fail the operation that already committed.
func publishEvent(p EventPublisher, event Event) {
	if p == nil {
		return
	}
	event.OccurredAt = time.Now().UTC()
	body, err := json.Marshal(event)
	if err != nil {
		log.Warn().Err(err).Str("event", event.Type).Msg("Failed to marshal event")
		return
	}
	if err := p.Publish(event.Type, body); err != nil {
		log.Warn().Err(err).Str("event", event.Type).Msg("Failed to publish event")
		return
	}
	log.Debug().Str("event", event.Type).Msg("Published event")
}
