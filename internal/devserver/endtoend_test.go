package devserver_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/ideavault/internal/application/evaluation"
	"github.com/alexisbeaulieu97/ideavault/internal/devserver"
	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
	"github.com/alexisbeaulieu97/ideavault/internal/infrastructure/httpapi"
)

func newStack(t *testing.T, opts devserver.Options) (*devserver.Server, *evaluation.Orchestrator) {
	t.Helper()
	srv, err := devserver.New(opts)
	require.NoError(t, err)
	httpServer := httptest.NewServer(srv.Handler())
	t.Cleanup(httpServer.Close)

	gatewayOpts := httpapi.Options{BaseURL: httpServer.URL + "/api", Timeout: 5 * time.Second}
	store, err := httpapi.NewStoreGateway(gatewayOpts)
	require.NoError(t, err)
	evaluator, err := httpapi.NewEvaluationGateway(gatewayOpts)
	require.NoError(t, err)

	return srv, evaluation.New(store, evaluator, nil, nil, nil)
}

func TestSubmitEvaluatesAgainstDevServer(t *testing.T) {
	_, orch := newStack(t, devserver.Options{})
	ctx := context.Background()

	created, err := orch.Submit(ctx, idea.Draft{Title: "Cut printing costs", Description: "Duplex by default", Category: idea.CategoryCostSavings})
	require.NoError(t, err)
	assert.Equal(t, idea.StatusSubmitted, created.Status)
	assert.Equal(t, 2, created.RowNumber)

	orch.Wait()

	record, ok := orch.Registry().Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, idea.StatusEvaluated, record.Status)
	require.True(t, record.Evaluation.Scored())
	assert.Equal(t, devserver.DefaultEvaluation().Scores, record.Evaluation.Scores)

	// A reload sees the persisted evaluation.
	require.NoError(t, orch.Load(ctx))
	record, _ = orch.Registry().Get(created.ID)
	assert.Equal(t, idea.StatusEvaluated, record.Status)
	assert.Equal(t, created.Timestamp, record.Timestamp)
}

func TestBatchRecoversFailedEvaluations(t *testing.T) {
	srv, orch := newStack(t, devserver.Options{FailEvaluations: true})
	ctx := context.Background()

	for _, title := range []string{"First", "Second"} {
		_, err := orch.Submit(ctx, idea.Draft{Title: title, Description: "d"})
		require.NoError(t, err)
	}
	orch.Wait()

	for _, record := range orch.Snapshot() {
		assert.Equal(t, idea.StatusError, record.Status)
		assert.Equal(t, idea.FailureSummary, record.Evaluation.Summary)
	}

	srv.SetFailEvaluations(false)
	report, err := orch.ReevaluateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Candidates)
	assert.Equal(t, 2, report.Evaluated)

	report, err = orch.ReevaluateAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.Candidates)
}
