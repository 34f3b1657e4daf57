package ui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent = lipgloss.Color("#2EC4B6")
	colorSoft   = lipgloss.Color("#9BE3DA")
	colorMuted  = lipgloss.Color("#6B7280")
	colorText   = lipgloss.Color("#FFFFFF")
	colorError  = lipgloss.Color("#FF4757")
	colorWarn   = lipgloss.Color("#FFB84D")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			MarginTop(1)

	LinkStyle = lipgloss.NewStyle().
			Foreground(colorSoft).
			Underline(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginBottom(1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(colorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	UnmappedStyle = lipgloss.NewStyle().
			Foreground(colorWarn).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorSoft).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)
)
