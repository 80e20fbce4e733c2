package ports

import "context"

const (
	// EventIdeaCreated is emitted after the store accepts a new idea.
	EventIdeaCreated = "idea.created"
	// EventIdeasLoaded is emitted after a full list load is merged.
	EventIdeasLoaded = "ideas.loaded"
	// EventEvaluationStarted is emitted before a scoring request is issued.
	EventEvaluationStarted = "evaluation.started"
	// EventEvaluationCompleted is emitted when scores are merged.
	EventEvaluationCompleted = "evaluation.completed"
	// EventEvaluationFailed is emitted when the failure placeholder is merged.
	EventEvaluationFailed = "evaluation.failed"
	// EventBatchStarted is emitted when a batch re-evaluation fixes its candidates.
	EventBatchStarted = "batch.started"
	// EventBatchCompleted is emitted after the last batch candidate resolves.
	EventBatchCompleted = "batch.completed"
)

// DomainEvent represents a significant occurrence within the domain or
// application layer. Events carry structured payloads that downstream
// subscribers can use for logging, dashboard refreshes, or integrations.
type DomainEvent interface {
	EventType() string
	Payload() interface{}
}

// EventPublisher distributes events to interested subscribers. Dispatch is
// synchronous. Publish blocks until all handlers run, so observability
// signals appear before the process exits. Handlers may spawn goroutines for
// async processing if work should continue in the background. Implementations
// must be thread-safe.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
}

// EventHandler processes an event of a specific type. Handlers should avoid
// panicking; failures should be surfaced via returned errors so publishers can
// log diagnostics and continue delivering to remaining subscribers.
type EventHandler func(context.Context, DomainEvent) error

// Subscription represents a registered handler. Callers must invoke
// Unsubscribe to stop receiving events and release resources.
type Subscription interface {
	Unsubscribe()
}
