package service

// Event represents a service lifecycle event.
// Minimal and stable: name + service name and optional fields via key/values.
type Event struct {
	Name    string
	Service string
	Fields  map[string]any
}

// EventPublisher receives events from services. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
