// Package components holds small render helpers shared by dashboard screens.
package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const defaultBarWidth = 24

// BatchProgress renders how far a batch re-evaluation has got.
type BatchProgress struct {
	bar   progress.Model
	total int
}

// NewBatchProgress creates a bar for total candidates. A width below one
// falls back to the default.
func NewBatchProgress(total, width int) BatchProgress {
	if width < 1 {
		width = defaultBarWidth
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = width
	return BatchProgress{bar: bar, total: total}
}

// View renders the bar for the given number of resolved candidates.
func (p BatchProgress) View(done int) string {
	ratio := 0.0
	if p.total > 0 {
		ratio = math.Min(1.0, float64(done)/float64(p.total))
	}
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d/%d", done, p.total))
	return lipgloss.JoinHorizontal(lipgloss.Left, p.bar.ViewAs(ratio), " ", label)
}

// BatchSummary describes a finished batch in one line.
func BatchSummary(candidates, evaluated, failed, skipped int) string {
	if candidates == 0 {
		return "Nothing to re-evaluate."
	}
	summary := fmt.Sprintf("Re-evaluated %d of %d idea(s)", evaluated, candidates)
	if failed > 0 {
		summary += fmt.Sprintf(", %d failed", failed)
	}
	if skipped > 0 {
		summary += fmt.Sprintf(", %d skipped", skipped)
	}
	return summary + "."
}
