package evaluation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
	"github.com/alexisbeaulieu97/ideavault/internal/ports"
)

func loaded(t *testing.T, store *stubStore, evaluator *stubEvaluator) (*Orchestrator, *recordingPublisher) {
	t.Helper()
	orch, events := newOrchestrator(store, evaluator)
	require.NoError(t, orch.Load(context.Background()))
	return orch, events
}

func TestReevaluateAllRunsSequentially(t *testing.T) {
	t.Parallel()

	store := &stubStore{records: []idea.Record{
		{ID: "e1", Evaluation: idea.FailedEvaluation()},
		{ID: "ok", Evaluation: cannedEvaluation()},
		{ID: "e2", Evaluation: idea.FailedEvaluation()},
	}}
	evaluator := &stubEvaluator{result: cannedEvaluation(), delay: 5 * time.Millisecond}
	orch, events := loaded(t, store, evaluator)

	report, err := orch.ReevaluateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, BatchReport{Candidates: 2, Evaluated: 2}, report)

	calls := evaluator.snapshot()
	require.Len(t, calls, 2)
	assert.Equal(t, "e1", calls[0].id)
	assert.Equal(t, "e2", calls[1].id)
	assert.False(t, calls[1].start.Before(calls[0].end), "second call starts after the first ends")
	assert.Equal(t, 1, evaluator.maxInFlight)

	for _, id := range []string{"e1", "e2"} {
		record, _ := orch.Registry().Get(id)
		assert.Equal(t, idea.StatusEvaluated, record.Status)
	}

	types := events.types()
	assert.Equal(t, ports.EventBatchStarted, types[1])
	assert.Equal(t, ports.EventBatchCompleted, types[len(types)-1])
}

func TestReevaluateAllContinuesAfterFailure(t *testing.T) {
	t.Parallel()

	store := &stubStore{records: []idea.Record{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	evaluator := &stubEvaluator{result: cannedEvaluation(), failIDs: map[string]bool{"b": true}}
	orch, _ := loaded(t, store, evaluator)

	report, err := orch.ReevaluateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, BatchReport{Candidates: 3, Evaluated: 2, Failed: 1}, report)
	assert.Equal(t, []string{"a", "b", "c"}, evaluator.callIDs())

	b, _ := orch.Registry().Get("b")
	assert.Equal(t, idea.StatusError, b.Status)
}

func TestReevaluateAllIsIdempotentOnScoredSet(t *testing.T) {
	t.Parallel()

	store := &stubStore{records: []idea.Record{
		{ID: "a", Evaluation: cannedEvaluation()},
		{ID: "b", Evaluation: cannedEvaluation()},
	}}
	evaluator := &stubEvaluator{result: cannedEvaluation()}
	orch, _ := loaded(t, store, evaluator)

	report, err := orch.ReevaluateAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Candidates)
	assert.Empty(t, evaluator.callIDs())
}

func TestReevaluateAllFixesCandidatesAtStart(t *testing.T) {
	t.Parallel()

	store := &stubStore{records: []idea.Record{{ID: "a"}, {ID: "b"}}}
	evaluator := &stubEvaluator{result: cannedEvaluation()}
	orch, _ := loaded(t, store, evaluator)

	evaluator.hook = func(ctx context.Context, record idea.Record) {
		if record.ID == "a" {
			assert.NoError(t, orch.Registry().InsertNew(idea.Record{ID: "late", Status: idea.StatusSubmitted}))
		}
	}

	report, err := orch.ReevaluateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Candidates)
	assert.Equal(t, []string{"a", "b"}, evaluator.callIDs())

	late, _ := orch.Registry().Get("late")
	assert.Equal(t, idea.StatusSubmitted, late.Status)
}

func TestReevaluateAllSkipsCandidatesResolvedElsewhere(t *testing.T) {
	t.Parallel()

	store := &stubStore{records: []idea.Record{{ID: "a"}, {ID: "b"}}}
	evaluator := &stubEvaluator{result: cannedEvaluation()}
	orch, _ := loaded(t, store, evaluator)

	evaluator.hook = func(ctx context.Context, record idea.Record) {
		if record.ID == "a" {
			_, err := orch.Registry().MarkEvaluating("b")
			assert.NoError(t, err)
			orch.Registry().MergeEvaluation("b", cannedEvaluation(), idea.OutcomeEvaluated)
		}
	}

	report, err := orch.ReevaluateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, BatchReport{Candidates: 2, Evaluated: 1, Skipped: 1}, report)
	assert.Equal(t, []string{"a"}, evaluator.callIDs())
}

func TestReevaluateAllRejectsConcurrentBatch(t *testing.T) {
	t.Parallel()

	store := &stubStore{records: []idea.Record{{ID: "a"}}}
	evaluator := &stubEvaluator{result: cannedEvaluation()}
	orch, _ := loaded(t, store, evaluator)

	evaluator.hook = func(ctx context.Context, record idea.Record) {
		assert.True(t, orch.BatchRunning())
		_, err := orch.ReevaluateAll(ctx)
		assert.True(t, errors.Is(err, ErrBatchInProgress))
	}

	_, err := orch.ReevaluateAll(context.Background())
	require.NoError(t, err)
	assert.False(t, orch.BatchRunning())
}

func TestReevaluateAllStopsIssuingAfterCancel(t *testing.T) {
	t.Parallel()

	store := &stubStore{records: []idea.Record{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	evaluator := &stubEvaluator{result: cannedEvaluation()}
	orch, _ := loaded(t, store, evaluator)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	evaluator.hook = func(context.Context, idea.Record) { cancel() }

	report, err := orch.ReevaluateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, BatchReport{Candidates: 3, Failed: 1, Skipped: 2}, report)

	for _, id := range []string{"b", "c"} {
		record, _ := orch.Registry().Get(id)
		assert.Equal(t, idea.StatusSubmitted, record.Status)
	}
}

func TestBatchProgressTracksResolvedCandidates(t *testing.T) {
	t.Parallel()

	var orch *Orchestrator
	var seen []int
	store := &stubStore{records: []idea.Record{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	evaluator := &stubEvaluator{
		result:  cannedEvaluation(),
		failIDs: map[string]bool{"b": true},
		hook: func(ctx context.Context, record idea.Record) {
			progress := orch.BatchProgress()
			assert.Equal(t, 3, progress.Candidates)
			seen = append(seen, progress.Done())
		},
	}
	orch, _ = loaded(t, store, evaluator)
	assert.Zero(t, orch.BatchProgress())

	report, err := orch.ReevaluateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, seen)
	assert.Equal(t, report, orch.BatchProgress(), "the last tally stays readable")
}
