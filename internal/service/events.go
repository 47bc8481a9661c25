package service

import "context"

// EventPublisher emits domain events to the message broker. Callers
// treat publish failures as non-fatal: losing an event never fails the
// originating request.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload map[string]any) error
}
