package ports

import (
	"context"

	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
)

// IdeaStore is the boundary to the external record store. Implementations
// translate every failure into *errors.TransportError, except drafts that fail
// presence checks, which are rejected with *errors.ValidationError before any
// network call. Callers must not assume partial results on failure.
type IdeaStore interface {
	// ListIdeas returns every stored idea in store order. Records carrying a
	// persisted evaluation come back with their derived status.
	ListIdeas(ctx context.Context) ([]idea.Record, error)

	// CreateIdea persists a draft. The store assigns ID and Timestamp; the
	// returned record is always StatusSubmitted without an evaluation.
	CreateIdea(ctx context.Context, draft idea.Draft) (idea.Record, error)
}

// Evaluator is the boundary to the external evaluation service. Every
// transport or service-side failure is reported as *errors.EvaluationError.
// Implementations never retry; retry policy belongs to the orchestrator.
type Evaluator interface {
	Evaluate(ctx context.Context, record idea.Record) (*idea.Evaluation, error)
}
