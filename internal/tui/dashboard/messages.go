package dashboard

import (
	"github.com/alexisbeaulieu97/ideavault/internal/application/evaluation"
	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
)

// Screen identifies which overlay is active.
type Screen int

const (
	ScreenMain Screen = iota
	ScreenHelp
)

// IdeasLoadedMsg is sent when a list reload finishes.
type IdeasLoadedMsg struct {
	Err error
}

// IdeaSubmittedMsg is sent when a create call finishes. The evaluation of a
// successful submission continues in the background.
type IdeaSubmittedMsg struct {
	Record idea.Record
	Err    error
}

// ReevaluateDoneMsg is sent when a single re-evaluation resolves.
type ReevaluateDoneMsg struct {
	IdeaID  string
	Outcome idea.Outcome
	Err     error
}

// BatchStartedMsg is sent once a batch re-evaluation has been dispatched.
type BatchStartedMsg struct{}

// BatchDoneMsg is sent when a batch re-evaluation finishes.
type BatchDoneMsg struct {
	Report evaluation.BatchReport
	Err    error
}

// PreferencesSavedMsg reports the outcome of persisting display choices.
type PreferencesSavedMsg struct {
	Err error
}

// ErrorMsg displays an error banner.
type ErrorMsg struct {
	Message string
}

// ClearErrorMsg dismisses the error banner.
type ClearErrorMsg struct{}
