package tui

import "github.com/charmbracelet/lipgloss"

// Screen palette.
var (
	titleColor    = lipgloss.Color("#B0E0E6") // powder blue
	questionColor = lipgloss.Color("#87CEEB") // sky blue
	countColor    = lipgloss.Color("#4169E1") // royal blue
	totalColor    = lipgloss.Color("#40E0D0") // turquoise
	footerColor   = lipgloss.Color("#00BFFF") // deep sky blue
	mutedColor    = lipgloss.Color("#8A8A8A")
	errorColor    = lipgloss.Color("#E53935")

	yesColor      = lipgloss.Color("#008000")
	yesFocusColor = lipgloss.Color("#98FB98")
	noColor       = lipgloss.Color("#FF0000")
	noFocusColor  = lipgloss.Color("#FFB6C1")
	idleButtonBg  = lipgloss.Color("#F0F0F0")
)

// Styles holds the rendered pieces of the screen.
type Styles struct {
	Title    lipgloss.Style
	Question lipgloss.Style
	Count    lipgloss.Style
	Total    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Footer   lipgloss.Style

	YesButton, YesFocused lipgloss.Style
	NoButton, NoFocused   lipgloss.Style
}

// DefaultStyles returns the standard screen styles.
func DefaultStyles() Styles {
	button := lipgloss.NewStyle().
		Padding(0, 3).
		Margin(0, 1).
		Border(lipgloss.RoundedBorder()).
		Bold(true)

	yes := button.Foreground(yesColor).BorderForeground(yesColor).Background(idleButtonBg)
	no := button.Foreground(noColor).BorderForeground(noColor).Background(idleButtonBg)

	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(titleColor).MarginBottom(1),
		Question:   lipgloss.NewStyle().Foreground(questionColor).MarginBottom(1),
		Count:      lipgloss.NewStyle().Foreground(countColor),
		Total:      lipgloss.NewStyle().Foreground(totalColor).Bold(true),
		Status:     lipgloss.NewStyle().Foreground(mutedColor),
		Error:      lipgloss.NewStyle().Foreground(errorColor),
		Footer:     lipgloss.NewStyle().Bold(true).Foreground(footerColor).MarginTop(1),
		YesButton:  yes,
		YesFocused: yes.Background(yesFocusColor),
		NoButton:   no,
		NoFocused:  no.Background(noFocusColor),
	}
}
