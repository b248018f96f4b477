package tui

import "github.com/charmbracelet/lipgloss"

// Lipgloss styles used by the views.
var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	styleDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	styleInfo  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // blue
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	styleStar  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
	styleLabel = lipgloss.NewStyle().Bold(true)

	styleHeading = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("5")).
			MarginBottom(1)

	styleButton = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8"))

	styleButtonActive = styleButton.
				BorderForeground(lipgloss.Color("12")).
				Foreground(lipgloss.Color("12")).
				Bold(true)

	styleCard = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8"))

	styleCardSelected = styleCard.BorderForeground(lipgloss.Color("14"))

	styleModal = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("5"))

	styleRec         = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("8"))
	styleRecSelected = styleRec.BorderForeground(lipgloss.Color("14"))
)
