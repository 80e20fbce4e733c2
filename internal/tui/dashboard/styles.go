package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
	"github.com/alexisbeaulieu97/ideavault/internal/view"
)

var (
	// Colors
	primaryColor    = lipgloss.Color("99")  // Purple
	successColor    = lipgloss.Color("42")  // Green
	warningColor    = lipgloss.Color("226") // Yellow
	errorColor      = lipgloss.Color("196") // Red
	mutedColor      = lipgloss.Color("245") // Gray
	accentColor     = lipgloss.Color("212") // Pink
	tealColor       = lipgloss.Color("30")
	amberColor      = lipgloss.Color("214")
	orangeColor     = lipgloss.Color("208")
	backgroundColor = lipgloss.Color("235") // Dark gray

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			PaddingRight(2)

	headerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(mutedColor).
			MarginBottom(1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(primaryColor).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Padding(0, 2)

	// Card styles
	cardStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			PaddingRight(2).
			MarginBottom(1).
			BorderStyle(lipgloss.HiddenBorder()).
			BorderLeft(true)

	selectedCardStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				PaddingRight(2).
				MarginBottom(1).
				BorderStyle(lipgloss.ThickBorder()).
				BorderLeft(true).
				BorderForeground(primaryColor)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	metaStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	sectionLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor).
				MarginTop(1)

	overallChipStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("231")).
				Background(tealColor).
				Padding(0, 1)

	scoreChipStyle = lipgloss.NewStyle().
			Bold(true).
			Background(backgroundColor).
			Padding(0, 1)

	// Status indicator styles
	statusEvaluatedStyle = lipgloss.NewStyle().
				Foreground(successColor).
				Bold(true)

	statusEvaluatingStyle = lipgloss.NewStyle().
				Foreground(warningColor).
				Bold(true)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Bold(true)

	statusSubmittedStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	// Form styles
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	focusedLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor)

	footerStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(mutedColor).
			PaddingTop(1).
			MarginTop(1)

	errorBannerStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Background(lipgloss.Color("52")). // Dark red background
				Bold(true).
				Padding(0, 2).
				MarginBottom(1).
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(errorColor)

	successBannerStyle = lipgloss.NewStyle().
				Foreground(successColor).
				Background(lipgloss.Color("22")).
				Padding(0, 2).
				MarginBottom(1).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(successColor)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Width(14)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	emptyStateStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true).
			PaddingTop(2).
			PaddingBottom(2).
			PaddingLeft(2)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	progressStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)
)

// StatusStyle returns the style for an idea status.
func StatusStyle(status idea.Status) lipgloss.Style {
	switch status {
	case idea.StatusEvaluated:
		return statusEvaluatedStyle
	case idea.StatusEvaluating:
		return statusEvaluatingStyle
	case idea.StatusError:
		return statusErrorStyle
	default:
		return statusSubmittedStyle
	}
}

// TierColor returns the foreground colour for a score tier.
func TierColor(tier view.Tier) lipgloss.Color {
	switch tier {
	case view.TierHigh:
		return successColor
	case view.TierMedium:
		return amberColor
	default:
		return orangeColor
	}
}

// ApplyMaxWidth applies a maximum width to all relevant styles
func ApplyMaxWidth(width int) {
	cardStyle = cardStyle.MaxWidth(width - 2)
	selectedCardStyle = selectedCardStyle.MaxWidth(width - 2)
	headerStyle = headerStyle.Width(width - 2)
	footerStyle = footerStyle.Width(width - 2)
}
