package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#66CCFF")
	guideFg   = lipgloss.Color("#2E3A48")
	errorFg   = lipgloss.Color("#F87171")
	borderCol = lipgloss.Color("#243141")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	errStyle   = lipgloss.NewStyle().Foreground(errorFg)

	// canvas cell styles, indexed by cellStyle
	cellStyles = [...]lipgloss.Style{
		styleBlank:    lipgloss.NewStyle(),
		styleGuide:    lipgloss.NewStyle().Foreground(guideFg),
		styleFeatured: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true),
		styleStrong:   lipgloss.NewStyle().Foreground(accentFg).Bold(true),
		styleLabel:    lipgloss.NewStyle().Foreground(accentFg),
		styleBehind:   lipgloss.NewStyle().Foreground(accentFg).Faint(true),
	}
)

type cellStyle uint8

const (
	styleBlank cellStyle = iota
	styleGuide
	styleFeatured
	styleStrong
	styleLabel
	styleBehind
)
