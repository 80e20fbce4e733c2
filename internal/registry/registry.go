// Package registry holds the authoritative in-memory table of ideas.
package registry

import (
	"sync"

	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
)

// Registry is the single source of truth for the ideas a client knows about.
// Records are kept newest first and never removed. Every mutation happens
// under one lock, so readers never observe a half-applied merge.
type Registry struct {
	mu    sync.RWMutex
	order []string
	ideas map[string]idea.Record
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{ideas: make(map[string]idea.Record)}
}

// ReplaceAll merges a full list load into the registry.
//
// Incoming records absent locally are added. A local record whose incoming
// counterpart lacks an evaluation keeps its status and evaluation, so a reload
// cannot regress an in-flight or scored idea; otherwise the incoming record
// wins. An incoming evaluation missing any score is recorded as the failure
// placeholder with status error. Local records missing from the payload are kept ahead of the payload,
// which follows server order.
func (r *Registry) ReplaceAll(records []idea.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()

	incoming := make(map[string]struct{}, len(records))
	payloadOrder := make([]string, 0, len(records))
	for _, record := range records {
		if record.ID == "" {
			continue
		}
		if _, dup := incoming[record.ID]; dup {
			continue
		}
		incoming[record.ID] = struct{}{}
		payloadOrder = append(payloadOrder, record.ID)

		next := record.Clone()
		if local, ok := r.ideas[record.ID]; ok && next.Evaluation == nil {
			next.Status = local.Status
			next.Evaluation = local.Evaluation
		} else {
			normalizeLoaded(&next)
		}
		r.ideas[record.ID] = next
	}

	order := make([]string, 0, len(r.ideas))
	for _, id := range r.order {
		if _, ok := incoming[id]; !ok {
			order = append(order, id)
		}
	}
	r.order = append(order, payloadOrder...)
}

// normalizeLoaded keeps status and evaluation consistent on a loaded record:
// error always carries exactly the failure placeholder.
func normalizeLoaded(record *idea.Record) {
	switch {
	case record.Evaluation != nil:
		record.Status = idea.DeriveStatus(record.Evaluation)
	case record.Status == "":
		record.Status = idea.StatusSubmitted
	}
	if record.Status == idea.StatusError {
		record.Evaluation = idea.FailedEvaluation()
	}
}

// InsertNew places a freshly created record at the head of the table.
func (r *Registry) InsertNew(record idea.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ideas[record.ID]; exists {
		return idea.NewDuplicateError(record.ID)
	}

	r.ideas[record.ID] = record.Clone()
	r.order = append([]string{record.ID}, r.order...)
	return nil
}

// MarkEvaluating moves a record to evaluating and clears its evaluation. The
// move is refused unless the current status is one of allowed; an empty
// allowed list accepts any status other than evaluating.
func (r *Registry) MarkEvaluating(id string, allowed ...idea.Status) (idea.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.ideas[id]
	if !ok {
		return idea.Record{}, idea.NewNotFoundError(id)
	}
	if !statusAllowed(record.Status, allowed) {
		return idea.Record{}, idea.NewInvalidStateError(id, record.Status, idea.StatusEvaluating)
	}

	record.Status = idea.StatusEvaluating
	record.Evaluation = nil
	r.ideas[id] = record
	return record.Clone(), nil
}

// MergeEvaluation attaches a resolution to a record. OutcomeEvaluated with a
// scored evaluation moves it to evaluated; anything else records the failure
// placeholder with status error. It reports false when the record is unknown.
func (r *Registry) MergeEvaluation(id string, evaluation *idea.Evaluation, outcome idea.Outcome) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.ideas[id]
	if !ok {
		return false
	}

	if outcome == idea.OutcomeEvaluated && evaluation.Scored() {
		record.Status = idea.StatusEvaluated
		record.Evaluation = evaluation.Clone()
	} else {
		record.Status = idea.StatusError
		record.Evaluation = idea.FailedEvaluation()
	}
	r.ideas[id] = record
	return true
}

// Snapshot returns a copy of every record in display order.
func (r *Registry) Snapshot() []idea.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]idea.Record, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.ideas[id].Clone())
	}
	return out
}

// Get returns a copy of the record with the given id.
func (r *Registry) Get(id string) (idea.Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.ideas[id]
	if !ok {
		return idea.Record{}, false
	}
	return record.Clone(), true
}

// Len returns the number of records.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// CountByStatus tallies records per status.
func (r *Registry) CountByStatus() map[idea.Status]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[idea.Status]int, 4)
	for _, record := range r.ideas {
		counts[record.Status]++
	}
	return counts
}

func statusAllowed(current idea.Status, allowed []idea.Status) bool {
	if len(allowed) == 0 {
		return current != idea.StatusEvaluating
	}
	for _, status := range allowed {
		if status == current {
			return true
		}
	}
	return false
}
