package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
	"github.com/alexisbeaulieu97/ideavault/internal/tui/components"
	"github.com/alexisbeaulieu97/ideavault/internal/view"
)

// View renders the current model state
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.screen == ScreenHelp {
		return m.renderHelpView()
	}

	var content strings.Builder
	content.WriteString(m.renderHeader())
	content.WriteString("\n")

	if msg := m.view.Error(); msg != "" {
		content.WriteString(errorBannerStyle.Render(msg))
		content.WriteString("\n")
	}
	if notice, ok := m.view.Notice(); ok {
		content.WriteString(successBannerStyle.Render(notice))
		content.WriteString("\n")
	}

	if m.view.Tab() == view.TabSubmit {
		content.WriteString(m.renderSubmitForm())
	} else {
		content.WriteString(m.renderIdeaList())
	}
	content.WriteString("\n")
	content.WriteString(m.renderFooter())

	return content.String()
}

// renderHeader renders the title, tabs and status summary
func (m Model) renderHeader() string {
	title := titleStyle.Render("💡 IdeaVault")
	if !m.useUnicode {
		title = titleStyle.Render("IdeaVault")
	}

	tabs := []string{inactiveTabStyle.Render("Submit"), inactiveTabStyle.Render(fmt.Sprintf("Ideas (%d)", len(m.records)))}
	if m.view.Tab() == view.TabSubmit {
		tabs[0] = activeTabStyle.Render("Submit")
	} else {
		tabs[1] = activeTabStyle.Render(fmt.Sprintf("Ideas (%d)", len(m.records)))
	}

	counts := m.CountByStatus()
	summary := fmt.Sprintf("%s %d  %s %d  %s %d  %s %d",
		m.statusIcon(idea.StatusEvaluated), counts[idea.StatusEvaluated],
		m.statusIcon(idea.StatusEvaluating), counts[idea.StatusEvaluating],
		m.statusIcon(idea.StatusError), counts[idea.StatusError],
		m.statusIcon(idea.StatusSubmitted), counts[idea.StatusSubmitted],
	)

	var activity []string
	if m.loading {
		activity = append(activity, m.spinner.View()+" Loading")
	}
	if m.submitting {
		activity = append(activity, m.spinner.View()+" Submitting")
	}
	if m.batching {
		progress := m.service.BatchProgress()
		bar := components.NewBatchProgress(progress.Candidates, 20)
		activity = append(activity, progressStyle.Render(m.spinner.View()+" Re-evaluating ")+bar.View(progress.Done()))
	}
	if len(activity) > 0 {
		summary += "  " + strings.Join(activity, "  ")
	}

	return headerStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center, title, strings.Join(tabs, " ")),
		summary,
	))
}

func (m Model) renderSubmitForm() string {
	label := func(field formField, text string) string {
		if m.form.focus == field {
			return focusedLabelStyle.Render("› " + text)
		}
		return labelStyle.Render("  " + text)
	}

	category := string(m.form.Category())
	if category == "" {
		category = "(none)"
	}
	categoryLine := fmt.Sprintf("  ‹ %s ›", category)
	if m.form.focus == fieldCategory {
		categoryLine = categoryStyle.Render(categoryLine)
	} else {
		categoryLine = metaStyle.Render(categoryLine)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		label(fieldTitle, "Title"),
		"  "+m.form.title.View(),
		"",
		label(fieldDescription, "Description"),
		m.form.description.View(),
		"",
		label(fieldCategory, "Category (optional)"),
		categoryLine,
	)
}

// renderIdeaList renders the cards that fit on screen, keeping the cursor visible
func (m Model) renderIdeaList() string {
	if len(m.cards) == 0 {
		return m.renderEmptyState()
	}

	rendered := make([]string, len(m.cards))
	for i, card := range m.cards {
		rendered[i] = m.renderCard(card, i == m.cursor)
	}

	budget := m.height - 12
	if budget < 5 {
		budget = 5
	}
	start := 0
	for start < m.cursor && linesBetween(rendered, start, m.cursor) > budget {
		start++
	}
	end := start
	used := 0
	for end < len(rendered) {
		h := lipgloss.Height(rendered[end])
		if used+h > budget && end > m.cursor {
			break
		}
		used += h
		end++
	}

	items := append([]string(nil), rendered[start:end]...)
	if start > 0 {
		items = append([]string{metaStyle.Render(fmt.Sprintf("▲ %d more above", start))}, items...)
	}
	if end < len(rendered) {
		items = append(items, metaStyle.Render(fmt.Sprintf("▼ %d more below", len(rendered)-end)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func linesBetween(rendered []string, from, to int) int {
	total := 0
	for i := from; i <= to; i++ {
		total += lipgloss.Height(rendered[i])
	}
	return total
}

// renderCard renders a single idea
func (m Model) renderCard(card view.Card, selected bool) string {
	record := card.Record

	icon := m.statusIcon(record.Status)
	if record.Status == idea.StatusEvaluating || m.reevaluating[record.ID] {
		icon = m.spinner.View()
	}
	header := fmt.Sprintf("%s %s", StatusStyle(record.Status).Render(icon), cardTitleStyle.Render(record.Title))

	meta := []string{}
	if record.Category != idea.CategoryNone {
		meta = append(meta, categoryStyle.Render(string(record.Category)))
	}
	meta = append(meta, metaStyle.Render(FormatAge(record.Timestamp, time.Now())))

	lines := []string{header, strings.Join(meta, metaStyle.Render(" · "))}

	switch {
	case record.Status == idea.StatusEvaluating:
		lines = append(lines, metaStyle.Render("AI evaluation in progress..."))
	case card.Pending:
		lines = append(lines, metaStyle.Render("Awaiting AI evaluation"))
	case record.Status == idea.StatusError:
		lines = append(lines, statusErrorStyle.Render(record.Evaluation.Summary))
	default:
		lines = append(lines, m.renderScores(record.Evaluation.Scores))
		if record.Evaluation.Summary != "" {
			lines = append(lines, record.Evaluation.Summary)
		}
	}

	if card.Full {
		lines = append(lines, "", record.Description)
		if record.Evaluation.Scored() {
			lines = append(lines, renderSection("Strengths", record.Evaluation.Strengths)...)
			lines = append(lines, renderSection("Considerations", record.Evaluation.Considerations)...)
			lines = append(lines, renderSection("Next steps", record.Evaluation.NextSteps)...)
		}
	}

	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderScores(scores *idea.Scores) string {
	if scores == nil {
		return ""
	}
	labels := [3]string{"💡", "⚙️", "🎯"}
	overall := "⭐"
	if !m.useUnicode {
		labels = [3]string{"INN", "FEA", "IMP"}
		overall = "ALL"
	}

	chip := func(label string, score int) string {
		return scoreChipStyle.Foreground(TierColor(view.TierFor(score))).Render(fmt.Sprintf("%s %d", label, score))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		chip(labels[0], scores.Innovation), " ",
		chip(labels[1], scores.Feasibility), " ",
		chip(labels[2], scores.Impact), " ",
		overallChipStyle.Render(fmt.Sprintf("%s %d", overall, scores.Overall)),
	)
}

func renderSection(title string, items []string) []string {
	if len(items) == 0 {
		return nil
	}
	lines := []string{sectionLabelStyle.Render(title)}
	for _, item := range items {
		lines = append(lines, "  • "+item)
	}
	return lines
}

func (m Model) statusIcon(status idea.Status) string {
	if m.useUnicode {
		return status.Icon()
	}
	return status.IconFallback()
}

// renderEmptyState renders the empty state when no ideas are listed
func (m Model) renderEmptyState() string {
	if m.loading {
		return emptyStateStyle.Render(m.spinner.View() + " Loading ideas...")
	}
	return emptyStateStyle.Render("No ideas yet. Press n to submit the first one.")
}

// renderFooter renders the footer with keyboard shortcuts
func (m Model) renderFooter() string {
	var hints []string
	if m.view.Tab() == view.TabSubmit {
		hints = []string{
			"tab: next field",
			"←/→: category",
			"ctrl+s: submit",
			"esc: ideas",
		}
		if m.view.Error() != "" {
			hints = append(hints, "ctrl+x: dismiss error")
		}
	} else {
		hints = []string{
			"↑/↓: navigate",
			"enter: expand",
			fmt.Sprintf("v: %s view", otherMode(m.view.DisplayMode())),
			fmt.Sprintf("s: sort (%s)", m.view.SortOrder()),
			"e: re-evaluate",
			"R: re-evaluate pending",
			"r: reload",
			"n: new idea",
		}
		if m.view.Error() != "" {
			hints = append(hints, "x: dismiss error")
		}
		hints = append(hints, "?: help", "q: quit")
	}

	return footerStyle.Render(strings.Join(hints, "  •  "))
}

func otherMode(mode view.DisplayMode) view.DisplayMode {
	if mode == view.DisplayFull {
		return view.DisplaySummary
	}
	return view.DisplayFull
}

// renderHelpView renders the help overlay
func (m Model) renderHelpView() string {
	rows := [][2]string{
		{"↑/↓, j/k", "Move between ideas"},
		{"enter, space", "Expand or collapse the selected idea"},
		{"v", "Switch every card between summary and full view"},
		{"s", "Cycle sort: newest, score, innovation, feasibility"},
		{"e", "Re-evaluate the selected idea"},
		{"R", "Re-evaluate every pending or failed idea, one at a time"},
		{"r", "Reload ideas from the server"},
		{"n, tab", "Submit a new idea"},
		{"x", "Dismiss the error banner"},
		{"q, ctrl+c", "Quit"},
	}

	lines := []string{titleStyle.Render("IdeaVault keys"), ""}
	for _, row := range rows {
		lines = append(lines, helpKeyStyle.Render(row[0])+helpDescStyle.Render(row[1]))
	}
	lines = append(lines, "", footerStyle.Render("Press ? or esc to close"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// FormatAge formats a timestamp relative to now
func FormatAge(t, now time.Time) string {
	if t.IsZero() {
		return "Unknown date"
	}

	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("Jan 2, 2006")
	}
}
