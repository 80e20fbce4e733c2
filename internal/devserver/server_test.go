package devserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
)

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	if opts.Clock == nil {
		opts.Clock = func() time.Time { return time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC) }
	}
	srv, err := New(opts)
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestCreateAssignsIdentityAndRow(t *testing.T) {
	srv := newTestServer(t, Options{})

	rec := do(t, srv, http.MethodPost, "/api/ideas", createBody{Title: " Cut printing costs ", Description: "Duplex by default", Category: "Cost Savings"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var first ideaJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, 2, first.RowNumber)
	assert.Equal(t, "Cut printing costs", first.Title)
	assert.Equal(t, "2024-05-10T09:30:00Z", first.Timestamp)
	assert.Nil(t, first.AIEvaluation)

	rec = do(t, srv, http.MethodPost, "/api/ideas", createBody{Title: "Second", Description: "d"})
	var second ideaJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Equal(t, 3, second.RowNumber)
	assert.NotEqual(t, first.ID, second.ID)

	rec = do(t, srv, http.MethodGet, "/api/ideas", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []ideaJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].ID, "newest first")
	assert.Equal(t, first.ID, listed[1].ID)
}

func TestCreateRejectsBadInput(t *testing.T) {
	srv := newTestServer(t, Options{})

	tests := []struct {
		name string
		body interface{}
	}{
		{name: "missing title", body: createBody{Description: "d"}},
		{name: "missing description", body: createBody{Title: "t"}},
		{name: "unknown category", body: createBody{Title: "t", Description: "d", Category: "Marketing"}},
		{name: "not an object", body: "plain"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/api/ideas", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}

	rec := do(t, srv, http.MethodGet, "/api/ideas", nil)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestEvaluatePersistsCannedResult(t *testing.T) {
	srv := newTestServer(t, Options{})
	rec := do(t, srv, http.MethodPost, "/api/ideas", createBody{Title: "t", Description: "d"})
	var created ideaJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(t, srv, http.MethodPost, "/api/evaluate", evaluateBody{ID: created.ID, RowNumber: created.RowNumber, Title: "t", Description: "d"})
	require.Equal(t, http.StatusOK, rec.Code)

	var result evaluationJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 6, result.InnovationScore)
	assert.Equal(t, 9, result.FeasibilityScore)
	assert.Equal(t, 7, result.ImpactScore)
	assert.Equal(t, 7, result.OverallScore)

	listed := srv.store.list()
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].AIEvaluation)
	assert.Equal(t, 7, listed[0].AIEvaluation.OverallScore)
}

func TestEvaluateUnknownIdea(t *testing.T) {
	srv := newTestServer(t, Options{})
	rec := do(t, srv, http.MethodPost, "/api/evaluate", evaluateBody{ID: "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEvaluateFailureMode(t *testing.T) {
	srv := newTestServer(t, Options{FailEvaluations: true})
	rec := do(t, srv, http.MethodPost, "/api/ideas", createBody{Title: "t", Description: "d"})
	var created ideaJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(t, srv, http.MethodPost, "/api/evaluate", evaluateBody{ID: created.ID})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Nil(t, srv.store.list()[0].AIEvaluation, "failed evaluations are not persisted")

	srv.SetFailEvaluations(false)
	rec = do(t, srv, http.MethodPost, "/api/evaluate", evaluateBody{ID: created.ID})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCustomEvaluation(t *testing.T) {
	custom := idea.Evaluation{Scores: &idea.Scores{Innovation: 9, Feasibility: 4, Impact: 8, Overall: 8}, Summary: "Bold"}
	srv := newTestServer(t, Options{Evaluation: &custom})
	rec := do(t, srv, http.MethodPost, "/api/ideas", createBody{Title: "t", Description: "d"})
	var created ideaJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(t, srv, http.MethodPost, "/api/evaluate", evaluateBody{ID: created.ID})
	var result evaluationJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 9, result.InnovationScore)
	assert.Equal(t, "Bold", result.Summary)

	assert.Error(t, srv.SetEvaluation(idea.Evaluation{Summary: "no scores"}))
	_, err := New(Options{Evaluation: &idea.Evaluation{Summary: "no scores"}})
	assert.Error(t, err)
}
