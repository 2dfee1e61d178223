package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is the envelope that flows through the event bus. Every domain
// event (market refresh, snapshot load, refresh failure) is wrapped in one.
type Event struct {
	ID        string
	Type      EventType
	Timestamp time.Time
	Payload   any
}

// New builds an Event with a fresh id and timestamp.
func New(t EventType, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

type EventType string

const (
	// Trend store lifecycle
	EventMarketRefresh       EventType = "market_refresh"
	EventMarketRefreshFailed EventType = "market_refresh_failed"
	EventSnapshotLoaded      EventType = "snapshot_loaded"
)
