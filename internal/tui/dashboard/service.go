package dashboard

import (
	"context"

	"github.com/alexisbeaulieu97/ideavault/internal/application/evaluation"
	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
)

// Service exposes the operations the dashboard drives. The evaluation
// orchestrator satisfies it.
type Service interface {
	Load(ctx context.Context) error
	Submit(ctx context.Context, draft idea.Draft) (idea.Record, error)
	Reevaluate(ctx context.Context, id string) (idea.Outcome, error)
	ReevaluateAll(ctx context.Context) (evaluation.BatchReport, error)
	Snapshot() []idea.Record
	BatchRunning() bool
	BatchProgress() evaluation.BatchReport
}

var _ Service = (*evaluation.Orchestrator)(nil)
