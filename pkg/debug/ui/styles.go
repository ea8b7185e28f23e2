package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette shared by the debug readers
var (
	PrimaryColor = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D56F4"}
	ErrColor     = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5555"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"}
	FgColor      = lipgloss.AdaptiveColor{Light: "#1E1E2E", Dark: "#CDD6F4"}
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(0, 1).
			MarginBottom(1)

	BodyStyle = lipgloss.NewStyle().
			Foreground(FgColor)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(PrimaryColor).
			Padding(0, 1).
			MarginTop(1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			MarginTop(1).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrColor).
			Bold(true)
)
