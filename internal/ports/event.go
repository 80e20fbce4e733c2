package ports

// Event is a simple DomainEvent carrying a key/value payload.
type Event struct {
	Type   string
	Fields map[string]interface{}
}

// NewEvent constructs an Event.
func NewEvent(eventType string, fields map[string]interface{}) Event {
	return Event{Type: eventType, Fields: fields}
}

// EventType implements DomainEvent.
func (e Event) EventType() string { return e.Type }

// Payload implements DomainEvent.
func (e Event) Payload() interface{} { return e.Fields }
