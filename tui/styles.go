package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
const (
	colorPrimary   = "#7D56F4"
	colorClip      = "#3C6E91"
	colorClipSel   = "#F2A65A"
	colorMusic     = "#04B575"
	colorPlayhead  = "#FF5F87"
	colorError     = "#FF0000"
	colorInfo      = "#626262"
	colorHighlight = "#FAFAFA"
)

// Styles for the editor view
var (
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorPrimary)).
		MarginBottom(1)

	ClipStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorHighlight)).
		Background(lipgloss.Color(colorClip))

	SelectedClipStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#1A1A1A")).
		Background(lipgloss.Color(colorClipSel))

	MusicStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#1A1A1A")).
		Background(lipgloss.Color(colorMusic))

	PlayheadStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorPlayhead))

	RulerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorInfo))

	StatusStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorMusic))

	ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorError))

	InfoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorInfo))
)
