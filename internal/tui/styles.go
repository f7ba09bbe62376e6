package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorAccent  = lipgloss.Color("#F25D94")
	ColorSuccess = lipgloss.Color("#43BF6D")
	ColorDanger  = lipgloss.Color("#E74C3C")
	ColorWarning = lipgloss.Color("#F1C40F")
	ColorMuted   = lipgloss.Color("#626262")
	ColorBorder  = lipgloss.Color("#3C3C3C")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C1C6B2")).
			Background(lipgloss.Color("#353533"))

	StatusKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	RecommendedBorderStyle = BorderStyle.BorderForeground(ColorSuccess)

	ActiveTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Underline(true).Padding(0, 1)
	InactiveTabStyle = lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 1)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted).Width(20)
	MetricValueStyle = lipgloss.NewStyle().Bold(true).Align(lipgloss.Right).Width(18)
	HighlightStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)

	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	HelpKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent).Width(10)
)
