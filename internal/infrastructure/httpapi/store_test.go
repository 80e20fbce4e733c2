package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
	apperrors "github.com/alexisbeaulieu97/ideavault/pkg/errors"
)

func newStore(t *testing.T, handler http.HandlerFunc) (*StoreGateway, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gateway, err := NewStoreGateway(Options{BaseURL: srv.URL + "/api/", Timeout: time.Second})
	require.NoError(t, err)
	return gateway, srv
}

func TestListIdeasDerivesStatus(t *testing.T) {
	t.Parallel()

	gateway, _ := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/ideas", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":"a","rowNumber":2,"title":"Cut printing costs","description":"Duplex","category":"Cost Savings","timestamp":"2024-05-01T10:00:00Z",
			 "aiEvaluation":{"innovationScore":6,"feasibilityScore":9,"impactScore":7,"overallScore":7,"summary":"Solid","strengths":["Cheap"]}},
			{"id":3,"rowNumber":"3","title":"Failed one","description":"d","aiEvaluation":{"summary":"Evaluation failed. Try re-evaluating."}},
			{"id":"c","title":"Fresh","description":"d"},
			{"id":"d","title":"Partial","description":"d","aiEvaluation":{"innovationScore":6,"summary":"half","strengths":["x"]}}
		]`))
	})

	records, err := gateway.ListIdeas(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, 2, records[0].RowNumber)
	assert.Equal(t, idea.StatusEvaluated, records[0].Status)
	assert.Equal(t, idea.Scores{Innovation: 6, Feasibility: 9, Impact: 7, Overall: 7}, *records[0].Evaluation.Scores)
	assert.Equal(t, []string{"Cheap"}, records[0].Evaluation.Strengths)
	assert.Equal(t, 2024, records[0].Timestamp.Year())

	assert.Equal(t, "3", records[1].ID)
	assert.Equal(t, 3, records[1].RowNumber)
	assert.Equal(t, idea.StatusError, records[1].Status)
	assert.Nil(t, records[1].Evaluation.Scores)

	assert.Equal(t, idea.StatusError, records[3].Status, "missing scores read as a failed evaluation")
	assert.Equal(t, idea.FailedEvaluation(), records[3].Evaluation)

	assert.Equal(t, idea.StatusSubmitted, records[2].Status)
	assert.Nil(t, records[2].Evaluation)
}

func TestListIdeasFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "sheet unavailable", http.StatusBadGateway)
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"not":"a list"}`))
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gateway, _ := newStore(t, tt.handler)
			records, err := gateway.ListIdeas(context.Background())
			require.Nil(t, records)

			var transportErr *apperrors.TransportError
			require.ErrorAs(t, err, &transportErr)
			assert.Equal(t, tt.wantStatus, transportErr.StatusCode)
			assert.Equal(t, "list ideas", transportErr.Operation)
		})
	}
}

func TestListIdeasUnreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	gateway, err := NewStoreGateway(Options{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = gateway.ListIdeas(context.Background())
	var transportErr *apperrors.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Zero(t, transportErr.StatusCode)
}

func TestListIdeasCoalescesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var calls int32
	release := make(chan struct{})
	gateway, _ := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-release
		_, _ = w.Write([]byte(`[{"id":"a","title":"t","description":"d"}]`))
	})

	var wg sync.WaitGroup
	results := make([][]idea.Record, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			records, err := gateway.ListIdeas(context.Background())
			assert.NoError(t, err)
			results[i] = records
		}(i)
	}

	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(4))
	for _, records := range results {
		require.Len(t, records, 1)
		assert.Equal(t, "a", records[0].ID)
	}
}

func TestListIdeasCancelledCallerDoesNotFailOthers(t *testing.T) {
	t.Parallel()

	var calls int32
	release := make(chan struct{})
	gateway, _ := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-release
		_, _ = w.Write([]byte(`[{"id":"a","title":"t","description":"d"}]`))
	})

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := gateway.ListIdeas(firstCtx)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)

	secondDone := make(chan []idea.Record, 1)
	go func() {
		records, err := gateway.ListIdeas(context.Background())
		assert.NoError(t, err)
		secondDone <- records
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	err := <-firstErr
	var transportErr *apperrors.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	records := <-secondDone
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCreateIdeaRejectsMissingFieldsWithoutNetwork(t *testing.T) {
	t.Parallel()

	var calls int32
	gateway, _ := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	_, err := gateway.CreateIdea(context.Background(), idea.Draft{Title: "   ", Description: "d"})
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestCreateIdeaForcesSubmittedStatus(t *testing.T) {
	t.Parallel()

	gateway, _ := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body createRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Cut printing costs", body.Title)
		assert.Equal(t, "Cost Savings", body.Category)

		_, _ = w.Write([]byte(`{"id":"new-1","rowNumber":9,"title":"Cut printing costs","description":"Duplex by default",
			"category":"Cost Savings","timestamp":"2024-05-01T10:00:00Z","aiEvaluation":{"summary":"stale"}}`))
	})

	record, err := gateway.CreateIdea(context.Background(), idea.Draft{
		Title:       " Cut printing costs ",
		Description: "Duplex by default",
		Category:    idea.CategoryCostSavings,
	})
	require.NoError(t, err)
	assert.Equal(t, "new-1", record.ID)
	assert.Equal(t, 9, record.RowNumber)
	assert.Equal(t, idea.StatusSubmitted, record.Status)
	assert.Nil(t, record.Evaluation)
}

func TestCreateIdeaFailure(t *testing.T) {
	t.Parallel()

	gateway, _ := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := gateway.CreateIdea(context.Background(), idea.Draft{Title: "t", Description: "d"})
	var transportErr *apperrors.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusInternalServerError, transportErr.StatusCode)
	assert.Equal(t, "create idea", transportErr.Operation)
}

func TestNewStoreGatewayRequiresBaseURL(t *testing.T) {
	t.Parallel()

	_, err := NewStoreGateway(Options{BaseURL: "  "})
	require.Error(t, err)
}
