package dashboard

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
	"github.com/alexisbeaulieu97/ideavault/internal/registry"
)

// loadIdeasCmd reloads the idea list from the record store.
func loadIdeasCmd(ctx context.Context, svc Service) tea.Cmd {
	return func() tea.Msg {
		return IdeasLoadedMsg{Err: svc.Load(ctx)}
	}
}

// submitCmd creates an idea. Its evaluation is scheduled by the service.
func submitCmd(ctx context.Context, svc Service, draft idea.Draft) tea.Cmd {
	return func() tea.Msg {
		record, err := svc.Submit(ctx, draft)
		return IdeaSubmittedMsg{Record: record, Err: err}
	}
}

// reevaluateCmd re-scores a single idea.
func reevaluateCmd(ctx context.Context, svc Service, id string) tea.Cmd {
	return func() tea.Msg {
		outcome, err := svc.Reevaluate(ctx, id)
		return ReevaluateDoneMsg{IdeaID: id, Outcome: outcome, Err: err}
	}
}

// reevaluateAllCmd runs a batch re-evaluation. Progress is observed through
// registry snapshots on each spinner tick.
func reevaluateAllCmd(ctx context.Context, svc Service) tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return BatchStartedMsg{} },
		func() tea.Msg {
			report, err := svc.ReevaluateAll(ctx)
			return BatchDoneMsg{Report: report, Err: err}
		},
	)
}

// savePreferencesCmd persists the display choices.
func savePreferencesCmd(store *registry.PreferenceStore, prefs registry.Preferences) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return PreferencesSavedMsg{Err: store.Update(prefs)}
	}
}
