package idea

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/alexisbeaulieu97/ideavault/pkg/errors"
)

// FailureSummary is the placeholder summary attached to an idea whose
// evaluation request failed.
const FailureSummary = "Evaluation failed. Try re-evaluating."

// Status represents where an idea sits in its evaluation lifecycle.
type Status string

const (
	StatusSubmitted  Status = "submitted"
	StatusEvaluating Status = "evaluating"
	StatusEvaluated  Status = "evaluated"
	StatusError      Status = "error"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Icon returns the Unicode icon for the status.
func (s Status) Icon() string {
	switch s {
	case StatusEvaluated:
		return "🟢"
	case StatusEvaluating:
		return "🟡"
	case StatusError:
		return "🔴"
	default:
		return "⚪"
	}
}

// IconFallback returns an ASCII marker when Unicode is not supported.
func (s Status) IconFallback() string {
	switch s {
	case StatusEvaluated:
		return "[OK]"
	case StatusEvaluating:
		return "[..]"
	case StatusError:
		return "[XX]"
	default:
		return "[--]"
	}
}

// Outcome is how an evaluation attempt resolved.
type Outcome string

const (
	OutcomeEvaluated Outcome = "evaluated"
	OutcomeFailed    Outcome = "failed"

	// OutcomeSkipped marks a batch candidate that changed state before its turn.
	OutcomeSkipped Outcome = "skipped"
)

// Status returns the record status an outcome resolves to.
func (o Outcome) Status() Status {
	if o == OutcomeEvaluated {
		return StatusEvaluated
	}
	return StatusError
}

// Category is an optional label from a closed enumeration.
type Category string

const (
	CategoryNone               Category = ""
	CategoryTechnology         Category = "Technology"
	CategoryProcessImprovement Category = "Process Improvement"
	CategoryCostSavings        Category = "Cost Savings"
	CategoryCustomerExperience Category = "Customer Experience"
	CategoryEmployeeExperience Category = "Employee Experience"
	CategoryProductInnovation  Category = "Product Innovation"
	CategoryOther              Category = "Other"
)

// Categories lists the selectable categories in display order.
func Categories() []Category {
	return []Category{
		CategoryTechnology,
		CategoryProcessImprovement,
		CategoryCostSavings,
		CategoryCustomerExperience,
		CategoryEmployeeExperience,
		CategoryProductInnovation,
		CategoryOther,
	}
}

// Valid reports whether the category is empty or one of the known labels.
func (c Category) Valid() bool {
	if c == CategoryNone {
		return true
	}
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory resolves user input to a known category, ignoring case and
// surrounding whitespace.
func ParseCategory(input string) (Category, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return CategoryNone, true
	}
	for _, known := range Categories() {
		if strings.EqualFold(trimmed, string(known)) {
			return known, true
		}
	}
	return Category(trimmed), false
}

// Scores holds the four ratings returned by the evaluation service. Overall
// is the service's own aggregate and is never derived locally.
type Scores struct {
	Innovation  int `json:"innovationScore"`
	Feasibility int `json:"feasibilityScore"`
	Impact      int `json:"impactScore"`
	Overall     int `json:"overallScore"`
}

// Evaluation is the scored assessment of an idea. A nil Scores marks the
// failure placeholder.
type Evaluation struct {
	Scores         *Scores
	Summary        string
	Strengths      []string
	Considerations []string
	NextSteps      []string
}

// FailedEvaluation returns the placeholder recorded when scoring fails.
func FailedEvaluation() *Evaluation {
	return &Evaluation{Summary: FailureSummary}
}

// Scored reports whether all four scores are present.
func (e *Evaluation) Scored() bool {
	return e != nil && e.Scores != nil
}

// Clone returns a deep copy so callers cannot alias registry state.
func (e *Evaluation) Clone() *Evaluation {
	if e == nil {
		return nil
	}
	out := &Evaluation{
		Summary:        e.Summary,
		Strengths:      cloneStrings(e.Strengths),
		Considerations: cloneStrings(e.Considerations),
		NextSteps:      cloneStrings(e.NextSteps),
	}
	if e.Scores != nil {
		scores := *e.Scores
		out.Scores = &scores
	}
	return out
}

// Record is a single idea as tracked by the client.
type Record struct {
	ID          string
	RowNumber   int
	Title       string
	Description string
	Category    Category
	Timestamp   time.Time
	Status      Status
	Evaluation  *Evaluation
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	r.Evaluation = r.Evaluation.Clone()
	return r
}

// NeedsEvaluation reports whether a batch re-evaluation should pick the record.
func (r Record) NeedsEvaluation() bool {
	switch r.Status {
	case StatusEvaluating:
		return false
	case StatusSubmitted, StatusError:
		return true
	default:
		return r.Evaluation == nil
	}
}

// DeriveStatus computes the status of a record received from the store from
// the evaluation it carries.
func DeriveStatus(evaluation *Evaluation) Status {
	switch {
	case evaluation == nil:
		return StatusSubmitted
	case evaluation.Scored():
		return StatusEvaluated
	default:
		return StatusError
	}
}

// Draft carries the user-supplied fields of a new idea.
type Draft struct {
	Title       string
	Description string
	Category    Category
}

// Normalized trims surrounding whitespace from the text fields.
func (d Draft) Normalized() Draft {
	return Draft{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Category:    d.Category,
	}
}

// Validate performs the presence checks required before a draft may be sent
// to the record store.
func (d Draft) Validate() error {
	n := d.Normalized()
	if n.Title == "" {
		return apperrors.NewValidationError("title", "please fill in both title and description", nil)
	}
	if n.Description == "" {
		return apperrors.NewValidationError("description", "please fill in both title and description", nil)
	}
	if !n.Category.Valid() {
		return apperrors.NewValidationError("category", fmt.Sprintf("unknown category %q", n.Category), nil)
	}
	return nil
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
