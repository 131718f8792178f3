package events

import "context"

// Stream carrying observation lifecycle events. The taxonomy aggregator
// subscribes to it to invalidate its cached report.
const StreamObservations = "events:observations"

// Event types
const (
	EventObservationModerated = "observation_moderated"
	EventObservationDeleted   = "observation_deleted"
	EventObservationRestored  = "observation_restored"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
