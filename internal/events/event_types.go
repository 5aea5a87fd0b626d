package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventCartLineAdded   EventType = "cart_line_added"
	EventCartLineRemoved EventType = "cart_line_removed"
	EventOrderPlaced     EventType = "order_placed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, userID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// CartLineAddedPayload payload.
type CartLineAddedPayload struct {
	LineID   string  `json:"line_id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// CartLineRemovedPayload payload.
type CartLineRemovedPayload struct {
	LineID  string `json:"line_id"`
	Removed bool   `json:"removed"`
}

// OrderPlacedPayload payload.
type OrderPlacedPayload struct {
	OrderID   string  `json:"order_id"`
	ItemCount int     `json:"item_count"`
	Total     float64 `json:"total"`
	Attached  bool    `json:"attached"`
}
