// Package evaluation schedules idea evaluations and reconciles their results
// with the registry.
package evaluation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
	"github.com/alexisbeaulieu97/ideavault/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/ideavault/internal/ports"
	"github.com/alexisbeaulieu97/ideavault/internal/registry"
)

// ErrBatchInProgress is returned when a batch re-evaluation is requested
// while another one is still running.
var ErrBatchInProgress = errors.New("batch re-evaluation already in progress")

// Orchestrator owns every status transition of an idea. Gateways never touch
// the registry directly.
type Orchestrator struct {
	store     ports.IdeaStore
	evaluator ports.Evaluator
	registry  *registry.Registry
	logger    ports.Logger
	events    ports.EventPublisher

	background   sync.WaitGroup
	batchRunning atomic.Bool

	progressMu sync.Mutex
	progress   BatchReport
}

// New wires an orchestrator. logger and events may be nil.
func New(store ports.IdeaStore, evaluator ports.Evaluator, reg *registry.Registry, logger ports.Logger, events ports.EventPublisher) *Orchestrator {
	if reg == nil {
		reg = registry.New()
	}
	return &Orchestrator{
		store:     store,
		evaluator: evaluator,
		registry:  reg,
		logger:    logging.OrNoOp(logger).With("layer", "application", "component", "orchestrator"),
		events:    events,
	}
}

// Registry exposes the table the orchestrator maintains.
func (o *Orchestrator) Registry() *registry.Registry {
	return o.registry
}

// Snapshot returns a copy of every registered idea, newest first.
func (o *Orchestrator) Snapshot() []idea.Record {
	return o.registry.Snapshot()
}

// Load fetches the full idea list and merges it into the registry. On
// failure the registry is left untouched.
func (o *Orchestrator) Load(ctx context.Context) error {
	records, err := o.store.ListIdeas(ctx)
	if err != nil {
		o.logger.Error(ctx, "failed to load ideas", "error", err)
		return err
	}

	o.registry.ReplaceAll(records)
	o.logger.Info(ctx, "ideas loaded", "count", len(records), "total", o.registry.Len())
	publishEvent(ctx, o.events, o.logger, ports.EventIdeasLoaded, map[string]interface{}{
		"count": len(records),
		"total": o.registry.Len(),
	})
	return nil
}

// Submit persists a draft, makes it visible in the registry, and schedules
// its evaluation in the background. The evaluation keeps running after ctx
// is cancelled; use Wait to block until it has merged.
func (o *Orchestrator) Submit(ctx context.Context, draft idea.Draft) (idea.Record, error) {
	record, err := o.store.CreateIdea(ctx, draft)
	if err != nil {
		o.logger.Warn(ctx, "failed to submit idea", "error", err)
		return idea.Record{}, err
	}

	// A reload that finished while the create was in flight may already have
	// registered the idea.
	if err := o.registry.InsertNew(record); err != nil {
		if !errors.Is(err, idea.ErrDuplicate) {
			o.logger.Error(ctx, "created idea could not be registered", "idea_id", record.ID, "error", err)
			return idea.Record{}, err
		}
		o.logger.Debug(ctx, "created idea already registered by a reload", "idea_id", record.ID)
	}

	o.logger.Info(ctx, "idea submitted", "idea_id", record.ID)
	publishEvent(ctx, o.events, o.logger, ports.EventIdeaCreated, map[string]interface{}{
		"idea_id":  record.ID,
		"category": string(record.Category),
	})

	bgCtx := context.WithoutCancel(ctx)
	o.background.Add(1)
	go func() {
		defer o.background.Done()
		if _, err := o.Evaluate(bgCtx, record.ID); err != nil {
			o.logger.Debug(bgCtx, "scheduled evaluation not started", "idea_id", record.ID, "error", err)
		}
	}()

	return record, nil
}

// Evaluate scores an idea that is submitted or in error. The returned error
// only reports refused transitions; a failed scoring call is recorded on the
// idea and reported as OutcomeFailed.
func (o *Orchestrator) Evaluate(ctx context.Context, id string) (idea.Outcome, error) {
	return o.evaluate(ctx, id, idea.StatusSubmitted, idea.StatusError)
}

// Reevaluate scores an idea again from any state other than evaluating.
func (o *Orchestrator) Reevaluate(ctx context.Context, id string) (idea.Outcome, error) {
	return o.evaluate(ctx, id)
}

// Wait blocks until every evaluation scheduled by Submit has merged.
func (o *Orchestrator) Wait() {
	o.background.Wait()
}

func (o *Orchestrator) evaluate(ctx context.Context, id string, allowed ...idea.Status) (idea.Outcome, error) {
	record, err := o.registry.MarkEvaluating(id, allowed...)
	if err != nil {
		return "", err
	}

	o.logger.Debug(ctx, "evaluation started", "idea_id", id)
	publishEvent(ctx, o.events, o.logger, ports.EventEvaluationStarted, map[string]interface{}{
		"idea_id": id,
	})

	started := time.Now()
	evaluation, err := o.evaluator.Evaluate(ctx, record)
	duration := time.Since(started).Milliseconds()

	outcome := idea.OutcomeEvaluated
	eventType := ports.EventEvaluationCompleted
	if err != nil || !evaluation.Scored() {
		outcome = idea.OutcomeFailed
		eventType = ports.EventEvaluationFailed
		o.logger.Warn(ctx, "evaluation failed", "idea_id", id, "duration_ms", duration, "error", err)
	}

	if !o.registry.MergeEvaluation(id, evaluation, outcome) {
		o.logger.Warn(ctx, "evaluation result dropped, idea no longer registered", "idea_id", id)
	} else if outcome == idea.OutcomeEvaluated {
		o.logger.Info(ctx, "evaluation completed", "idea_id", id, "overall", evaluation.Scores.Overall, "duration_ms", duration)
	}

	publishEvent(ctx, o.events, o.logger, eventType, map[string]interface{}{
		"idea_id":     id,
		"outcome":     string(outcome),
		"duration_ms": duration,
	})
	return outcome, nil
}
