package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/ideavault/internal/application/evaluation"
	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
	"github.com/alexisbeaulieu97/ideavault/internal/registry"
	"github.com/alexisbeaulieu97/ideavault/internal/view"
)

type stubService struct {
	mu          sync.Mutex
	reg         *registry.Registry
	loadErr     error
	submitErr   error
	loads       int
	submitted   []idea.Draft
	reevaluated []string
	batches     int
	batchErr    error
}

func newStubService(records ...idea.Record) *stubService {
	reg := registry.New()
	reg.ReplaceAll(records)
	return &stubService{reg: reg}
}

func (s *stubService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	return s.loadErr
}

func (s *stubService) Submit(ctx context.Context, draft idea.Draft) (idea.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitErr != nil {
		return idea.Record{}, s.submitErr
	}
	s.submitted = append(s.submitted, draft)
	record := idea.Record{ID: "created", Title: draft.Title, Description: draft.Description, Status: idea.StatusSubmitted}
	return record, s.reg.InsertNew(record)
}

func (s *stubService) Reevaluate(ctx context.Context, id string) (idea.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reevaluated = append(s.reevaluated, id)
	return idea.OutcomeEvaluated, nil
}

func (s *stubService) ReevaluateAll(ctx context.Context) (evaluation.BatchReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches++
	return evaluation.BatchReport{Candidates: 2, Evaluated: 1, Failed: 1}, s.batchErr
}

func (s *stubService) Snapshot() []idea.Record { return s.reg.Snapshot() }

func (s *stubService) BatchRunning() bool { return false }

func (s *stubService) BatchProgress() evaluation.BatchReport {
	return evaluation.BatchReport{Candidates: 3, Evaluated: 1}
}

func scoredIdea(id, title string, overall int) idea.Record {
	return idea.Record{
		ID:          id,
		Title:       title,
		Description: "Description of " + title,
		Category:    idea.CategoryCostSavings,
		Timestamp:   time.Now().Add(-2 * time.Hour),
		Evaluation: &idea.Evaluation{
			Scores:         &idea.Scores{Innovation: 6, Feasibility: 9, Impact: 7, Overall: overall},
			Summary:        "Summary of " + title,
			Strengths:      []string{"Easy rollout"},
			Considerations: []string{"Habit change"},
			NextSteps:      []string{"Pilot on one floor"},
		},
	}
}

func TestNewModelReadsSnapshot(t *testing.T) {
	svc := newStubService(scoredIdea("a", "Cut printing costs", 7), idea.Record{ID: "b", Title: "Fresh"})

	m := NewModel(svc, Options{UseUnicode: true})
	require.Len(t, m.Cards(), 2)
	assert.Equal(t, view.TabSubmit, m.Tab())
	assert.Equal(t, 0, m.Cursor())

	counts := m.CountByStatus()
	assert.Equal(t, 1, counts[idea.StatusEvaluated])
	assert.Equal(t, 1, counts[idea.StatusSubmitted])
}

func TestNewModelAppliesInitialView(t *testing.T) {
	svc := newStubService(scoredIdea("low", "Low", 3), scoredIdea("high", "High", 9))

	m := NewModel(svc, Options{DisplayMode: view.DisplayFull, SortOrder: view.SortScore})
	require.Len(t, m.Cards(), 2)
	assert.Equal(t, "high", m.Cards()[0].Record.ID)
	assert.True(t, m.Cards()[1].Full)
}

func TestCursorWraps(t *testing.T) {
	svc := newStubService(idea.Record{ID: "a"}, idea.Record{ID: "b"})
	m := NewModel(svc, Options{})

	m.MoveCursorUp()
	assert.Equal(t, 1, m.Cursor())
	m.MoveCursorDown()
	assert.Equal(t, 0, m.Cursor())
}

func TestRefreshKeepsCursorOnSameIdea(t *testing.T) {
	svc := newStubService(idea.Record{ID: "a"}, idea.Record{ID: "b"})
	m := NewModel(svc, Options{})
	m.MoveCursorDown()

	require.NoError(t, svc.reg.InsertNew(idea.Record{ID: "c", Status: idea.StatusSubmitted}))
	m.refresh()

	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", selected.ID)
	assert.Equal(t, 2, m.Cursor())
}

func TestBusyTracksEvaluatingRecords(t *testing.T) {
	svc := newStubService(idea.Record{ID: "a"})
	m := NewModel(svc, Options{})
	assert.False(t, m.Busy())

	_, err := svc.reg.MarkEvaluating("a")
	require.NoError(t, err)
	m.refresh()
	assert.True(t, m.Busy())
}

var errBoom = errors.New("boom")
