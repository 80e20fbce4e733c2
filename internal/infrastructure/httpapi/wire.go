package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
)

// flexibleID accepts identifiers encoded either as JSON strings or numbers.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = flexibleID(n.String())
	return nil
}

// flexibleInt accepts integers encoded as JSON numbers, integral floats or
// numeric strings.
type flexibleInt int

func (f *flexibleInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	raw := strings.Trim(string(data), `"`)
	if raw == "" {
		*f = 0
		return nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		*f = flexibleInt(n)
		return nil
	}
	// Spreadsheet-backed stores send whole numbers as floats ("2.0", 2e0).
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return fmt.Errorf("expected integer, got %s", data)
	}
	*f = flexibleInt(int(v))
	return nil
}

type ideaDTO struct {
	ID           flexibleID     `json:"id"`
	RowNumber    flexibleInt    `json:"rowNumber,omitempty"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Category     string         `json:"category"`
	Timestamp    string         `json:"timestamp,omitempty"`
	AIEvaluation *evaluationDTO `json:"aiEvaluation,omitempty"`
}

type evaluationDTO struct {
	InnovationScore  *int     `json:"innovationScore,omitempty"`
	FeasibilityScore *int     `json:"feasibilityScore,omitempty"`
	ImpactScore      *int     `json:"impactScore,omitempty"`
	OverallScore     *int     `json:"overallScore,omitempty"`
	Summary          string   `json:"summary"`
	Strengths        []string `json:"strengths,omitempty"`
	Considerations   []string `json:"considerations,omitempty"`
	NextSteps        []string `json:"nextSteps,omitempty"`
}

type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type evaluateRequest struct {
	ID          string `json:"id"`
	RowNumber   int    `json:"rowNumber,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// complete reports whether all four scores were sent.
func (e *evaluationDTO) complete() bool {
	return e.InnovationScore != nil && e.FeasibilityScore != nil && e.ImpactScore != nil && e.OverallScore != nil
}

func (e *evaluationDTO) toDomain() *idea.Evaluation {
	if e == nil {
		return nil
	}
	out := &idea.Evaluation{
		Summary:        e.Summary,
		Strengths:      e.Strengths,
		Considerations: e.Considerations,
		NextSteps:      e.NextSteps,
	}
	if e.complete() {
		out.Scores = &idea.Scores{
			Innovation:  *e.InnovationScore,
			Feasibility: *e.FeasibilityScore,
			Impact:      *e.ImpactScore,
			Overall:     *e.OverallScore,
		}
	}
	return out
}

func (d ideaDTO) toDomain() idea.Record {
	evaluation := d.AIEvaluation.toDomain()
	if evaluation != nil && !evaluation.Scored() {
		evaluation = idea.FailedEvaluation()
	}
	return idea.Record{
		ID:          string(d.ID),
		RowNumber:   int(d.RowNumber),
		Title:       d.Title,
		Description: d.Description,
		Category:    idea.Category(d.Category),
		Timestamp:   parseTimestamp(d.Timestamp),
		Status:      idea.DeriveStatus(evaluation),
		Evaluation:  evaluation,
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006, 3:04:05 PM",
}

// parseTimestamp tolerates the handful of layouts the store has been seen to
// emit. Unparseable values yield the zero time.
func parseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}
