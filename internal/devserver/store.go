package devserver

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type evaluationJSON struct {
	InnovationScore  int      `json:"innovationScore"`
	FeasibilityScore int      `json:"feasibilityScore"`
	ImpactScore      int      `json:"impactScore"`
	OverallScore     int      `json:"overallScore"`
	Summary          string   `json:"summary"`
	Strengths        []string `json:"strengths"`
	Considerations   []string `json:"considerations"`
	NextSteps        []string `json:"nextSteps"`
}

type ideaJSON struct {
	ID           string          `json:"id"`
	RowNumber    int             `json:"rowNumber"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Timestamp    string          `json:"timestamp"`
	AIEvaluation *evaluationJSON `json:"aiEvaluation,omitempty"`
}

// memoryStore keeps ideas in insertion order, mirroring a spreadsheet whose
// first data row is 2. Listings are newest first.
type memoryStore struct {
	mu      sync.RWMutex
	ideas   []ideaJSON
	byID    map[string]int
	nextRow int
	now     func() time.Time
}

func newMemoryStore(now func() time.Time) *memoryStore {
	return &memoryStore{
		byID:    make(map[string]int),
		nextRow: 2,
		now:     now,
	}
}

func (s *memoryStore) list() []ideaJSON {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ideaJSON, 0, len(s.ideas))
	for i := len(s.ideas) - 1; i >= 0; i-- {
		stored := s.ideas[i]
		if stored.AIEvaluation != nil {
			evaluation := *stored.AIEvaluation
			stored.AIEvaluation = &evaluation
		}
		out = append(out, stored)
	}
	return out
}

func (s *memoryStore) create(title, description, category string) ideaJSON {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := ideaJSON{
		ID:          uuid.NewString(),
		RowNumber:   s.nextRow,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Category:    category,
		Timestamp:   s.now().UTC().Format(time.RFC3339),
	}
	s.nextRow++
	s.byID[created.ID] = len(s.ideas)
	s.ideas = append(s.ideas, created)
	return created
}

// attach stores an evaluation against the idea. It reports false when the
// idea is unknown.
func (s *memoryStore) attach(id string, evaluation evaluationJSON) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[id]
	if !ok {
		return false
	}
	s.ideas[idx].AIEvaluation = &evaluation
	return true
}

func (s *memoryStore) exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[id]
	return ok
}
