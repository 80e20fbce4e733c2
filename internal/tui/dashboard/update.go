package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/ideavault/internal/application/evaluation"
	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
	"github.com/alexisbeaulieu97/ideavault/internal/tui/components"
	"github.com/alexisbeaulieu97/ideavault/internal/view"
	apperrors "github.com/alexisbeaulieu97/ideavault/pkg/errors"
)

// Banner texts shown for store failures.
const (
	loadFailedMessage   = "Could not connect to server. Please try again later."
	submitFailedMessage = "Failed to submit idea. Please check your connection and try again."
	submittedMessage    = "Idea submitted! AI evaluation in progress..."
)

const (
	minWidth  = 60
	minHeight = 20
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		ApplyMaxWidth(m.width)

		if m.width < minWidth || m.height < minHeight {
			m.view.SetError(fmt.Sprintf("Terminal too small (%dx%d). Minimum size: %dx%d",
				m.width, m.height, minWidth, minHeight))
		} else if strings.HasPrefix(m.view.Error(), "Terminal too small") {
			m.view.DismissError()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	// Each tick re-reads the registry so background evaluations show up.
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd

	case IdeasLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.view.SetError(loadFailedMessage)
		}
		m.refresh()
		return m, nil

	case IdeaSubmittedMsg:
		m.submitting = false
		if msg.Err != nil {
			var validationErr *apperrors.ValidationError
			if errors.As(msg.Err, &validationErr) {
				m.view.SetError(capitalize(validationErr.Message))
			} else {
				m.view.SetError(submitFailedMessage)
			}
			return m, nil
		}
		m.form = m.form.Reset()
		m.view.Notify(submittedMessage)
		m.refresh()
		return m, nil

	case ReevaluateDoneMsg:
		delete(m.reevaluating, msg.IdeaID)
		m.refresh()
		return m, nil

	case BatchStartedMsg:
		m.batching = true
		return m, nil

	case BatchDoneMsg:
		m.batching = false
		switch {
		case errors.Is(msg.Err, evaluation.ErrBatchInProgress):
			m.view.SetError("A re-evaluation is already running.")
		case msg.Err != nil:
			m.view.SetError(fmt.Sprintf("Re-evaluation stopped: %v", msg.Err))
		default:
			r := msg.Report
			m.view.Notify(components.BatchSummary(r.Candidates, r.Evaluated, r.Failed, r.Skipped))
		}
		m.refresh()
		return m, nil

	case PreferencesSavedMsg:
		if msg.Err != nil {
			m.view.SetError(fmt.Sprintf("Failed to save preferences: %v", msg.Err))
		}
		return m, nil

	case ErrorMsg:
		m.view.SetError(msg.Message)
		return m, nil

	case ClearErrorMsg:
		m.view.DismissError()
		return m, nil
	}

	return m, nil
}

// handleKeyPress routes keyboard input based on the active screen and tab
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.screen == ScreenHelp {
		return m.handleHelpKeys(msg)
	}
	if m.view.Tab() == view.TabSubmit {
		return m.handleSubmitKeys(msg)
	}
	return m.handleIdeasKeys(msg)
}

func (m Model) handleIdeasKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "x":
		m.view.DismissError()
		return m, nil

	case "up", "k":
		m.MoveCursorUp()
		return m, nil

	case "down", "j":
		m.MoveCursorDown()
		return m, nil

	case "enter", " ":
		if record, ok := m.Selected(); ok {
			m.view.Toggle(record.ID)
			m.refresh()
		}
		return m, nil

	case "v":
		m.view.ToggleDisplayMode()
		m.refresh()
		return m, savePreferencesCmd(m.prefs, m.preferences())

	case "s":
		m.view.CycleSort()
		m.refresh()
		return m, savePreferencesCmd(m.prefs, m.preferences())

	case "r":
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, loadIdeasCmd(m.ctx, m.service)

	case "R":
		if m.batching || m.service.BatchRunning() {
			return m, nil
		}
		m.batching = true
		return m, reevaluateAllCmd(m.ctx, m.service)

	case "e":
		record, ok := m.Selected()
		if !ok || record.Status == idea.StatusEvaluating || m.reevaluating[record.ID] {
			return m, nil
		}
		m.reevaluating[record.ID] = true
		return m, reevaluateCmd(m.ctx, m.service, record.ID)

	case "n", "1", "tab", "shift+tab":
		m.view.SetTab(view.TabSubmit)
		return m, nil

	case "?":
		m.screen = ScreenHelp
		return m, nil
	}

	return m, nil
}

func (m Model) handleSubmitKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.enterIdeasTab()

	case "tab":
		m.form = m.form.FocusNext()
		return m, nil

	case "shift+tab":
		m.form = m.form.FocusPrev()
		return m, nil

	case "ctrl+x":
		m.view.DismissError()
		return m, nil

	case "ctrl+s":
		return m.submit()

	case "enter":
		if m.form.focus == fieldCategory {
			return m.submit()
		}
		if m.form.focus == fieldTitle {
			m.form = m.form.FocusNext()
			return m, nil
		}

	case "left", "h":
		if m.form.focus == fieldCategory {
			m.form = m.form.CycleCategory(-1)
			return m, nil
		}

	case "right", "l", " ":
		if m.form.focus == fieldCategory {
			m.form = m.form.CycleCategory(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		m.screen = ScreenMain
	}
	return m, nil
}

// enterIdeasTab switches to the ideas tab and reloads the list on every visit.
func (m Model) enterIdeasTab() (tea.Model, tea.Cmd) {
	if !m.view.SetTab(view.TabIdeas) || m.loading {
		return m, nil
	}
	m.loading = true
	return m, loadIdeasCmd(m.ctx, m.service)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	draft := m.form.Draft()
	if err := draft.Validate(); err != nil {
		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			m.view.SetError(capitalize(validationErr.Message))
		}
		return m, nil
	}
	m.view.DismissError()
	m.submitting = true
	return m, submitCmd(m.ctx, m.service, draft)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
