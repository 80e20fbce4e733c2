package evaluation

import (
	"context"
	"errors"

	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
	"github.com/alexisbeaulieu97/ideavault/internal/ports"
)

// BatchReport summarises a batch re-evaluation.
type BatchReport struct {
	Candidates int
	Evaluated  int
	Failed     int
	Skipped    int
}

// Done reports how many candidates have resolved.
func (r BatchReport) Done() int {
	return r.Evaluated + r.Failed + r.Skipped
}

// Candidates returns the ids a batch re-evaluation would pick right now, in
// registry order.
func (o *Orchestrator) Candidates() []string {
	var ids []string
	for _, record := range o.registry.Snapshot() {
		if record.NeedsEvaluation() {
			ids = append(ids, record.ID)
		}
	}
	return ids
}

// ReevaluateAll evaluates every idea that is submitted, in error, or lacks an
// evaluation. Candidates are fixed when the call starts and are evaluated
// one at a time in order; a failure never stops the batch. A candidate whose
// status moved on before its turn is skipped. When ctx is cancelled the
// remaining candidates are skipped and left as they are.
func (o *Orchestrator) ReevaluateAll(ctx context.Context) (BatchReport, error) {
	if !o.batchRunning.CompareAndSwap(false, true) {
		return BatchReport{}, ErrBatchInProgress
	}
	defer o.batchRunning.Store(false)

	candidates := o.Candidates()
	report := BatchReport{Candidates: len(candidates)}
	o.setProgress(report)

	o.logger.Info(ctx, "batch re-evaluation started", "candidates", len(candidates))
	publishEvent(ctx, o.events, o.logger, ports.EventBatchStarted, map[string]interface{}{
		"candidates": len(candidates),
	})

	for _, id := range candidates {
		if ctx.Err() != nil {
			report.Skipped++
			o.setProgress(report)
			continue
		}

		outcome, err := o.Evaluate(ctx, id)
		switch {
		case errors.Is(err, idea.ErrInvalidState), errors.Is(err, idea.ErrNotFound):
			o.logger.Debug(ctx, "batch candidate skipped", "idea_id", id, "reason", err)
			report.Skipped++
		case err != nil:
			return report, err
		case outcome == idea.OutcomeEvaluated:
			report.Evaluated++
		default:
			report.Failed++
		}
		o.setProgress(report)
	}

	o.logger.Info(ctx, "batch re-evaluation completed",
		"candidates", report.Candidates,
		"evaluated", report.Evaluated,
		"failed", report.Failed,
		"skipped", report.Skipped,
	)
	publishEvent(ctx, o.events, o.logger, ports.EventBatchCompleted, map[string]interface{}{
		"candidates": report.Candidates,
		"evaluated":  report.Evaluated,
		"failed":     report.Failed,
		"skipped":    report.Skipped,
	})
	return report, nil
}

// BatchProgress returns the tally of the running batch, or of the last one
// once it has finished.
func (o *Orchestrator) BatchProgress() BatchReport {
	o.progressMu.Lock()
	defer o.progressMu.Unlock()
	return o.progress
}

func (o *Orchestrator) setProgress(report BatchReport) {
	o.progressMu.Lock()
	o.progress = report
	o.progressMu.Unlock()
}

// BatchRunning reports whether a batch re-evaluation is in progress.
func (o *Orchestrator) BatchRunning() bool {
	return o.batchRunning.Load()
}
