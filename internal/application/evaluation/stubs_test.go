package evaluation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
	"github.com/alexisbeaulieu97/ideavault/internal/ports"
	apperrors "github.com/alexisbeaulieu97/ideavault/pkg/errors"
)

type stubStore struct {
	mu      sync.Mutex
	records []idea.Record
	listErr error
	created []idea.Draft
	nextID  int

	// persist stores created ideas so later lists return them.
	persist     bool
	afterCreate func(ctx context.Context, record idea.Record)
}

func (s *stubStore) ListIdeas(ctx context.Context) ([]idea.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]idea.Record, len(s.records))
	for i, record := range s.records {
		out[i] = record.Clone()
	}
	return out, nil
}

func (s *stubStore) CreateIdea(ctx context.Context, draft idea.Draft) (idea.Record, error) {
	if err := draft.Validate(); err != nil {
		return idea.Record{}, err
	}
	s.mu.Lock()
	s.nextID++
	s.created = append(s.created, draft)
	record := idea.Record{
		ID:          "new-" + string(rune('0'+s.nextID)),
		Title:       draft.Title,
		Description: draft.Description,
		Category:    draft.Category,
		Timestamp:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Status:      idea.StatusSubmitted,
	}
	if s.persist {
		s.records = append([]idea.Record{record.Clone()}, s.records...)
	}
	afterCreate := s.afterCreate
	s.mu.Unlock()

	if afterCreate != nil {
		afterCreate(ctx, record)
	}
	return record, nil
}

type call struct {
	id    string
	start time.Time
	end   time.Time
}

type stubEvaluator struct {
	mu          sync.Mutex
	calls       []call
	inFlight    int
	maxInFlight int
	result      *idea.Evaluation
	failIDs     map[string]bool
	delay       time.Duration
	hook        func(ctx context.Context, record idea.Record)
}

func (e *stubEvaluator) Evaluate(ctx context.Context, record idea.Record) (*idea.Evaluation, error) {
	e.mu.Lock()
	e.inFlight++
	if e.inFlight > e.maxInFlight {
		e.maxInFlight = e.inFlight
	}
	index := len(e.calls)
	e.calls = append(e.calls, call{id: record.ID, start: time.Now()})
	hook := e.hook
	e.mu.Unlock()

	if hook != nil {
		hook(ctx, record)
	}
	if e.delay > 0 {
		time.Sleep(e.delay)
	}

	e.mu.Lock()
	e.inFlight--
	e.calls[index].end = time.Now()
	fail := e.failIDs[record.ID]
	e.mu.Unlock()

	if fail {
		return nil, apperrors.NewEvaluationError(record.ID, 503, errors.New("service unavailable"))
	}
	if ctx.Err() != nil {
		return nil, apperrors.NewEvaluationError(record.ID, 0, ctx.Err())
	}
	return e.result.Clone(), nil
}

func (e *stubEvaluator) callIDs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.calls))
	for i, c := range e.calls {
		out[i] = c.id
	}
	return out
}

func (e *stubEvaluator) snapshot() []call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]call(nil), e.calls...)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingPublisher) Publish(ctx context.Context, event ports.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event.EventType())
	return nil
}

func (r *recordingPublisher) Subscribe(string, ports.EventHandler) (ports.Subscription, error) {
	return nil, errors.New("not supported")
}

func (r *recordingPublisher) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func cannedEvaluation() *idea.Evaluation {
	return &idea.Evaluation{
		Scores:         &idea.Scores{Innovation: 6, Feasibility: 9, Impact: 7, Overall: 7},
		Summary:        "Solid, low-risk idea.",
		Strengths:      []string{"Easy rollout"},
		Considerations: []string{"Needs IT policy change"},
		NextSteps:      []string{"Pilot in one floor"},
	}
}
