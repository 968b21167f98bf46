package editor

import "github.com/charmbracelet/lipgloss"

// Style controls the editor's rendering.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text      lipgloss.Style
	Heading   lipgloss.Style
	Marker    lipgloss.Style
	TaskDone  lipgloss.Style
	Priority  lipgloss.Style
	Quote     lipgloss.Style
	Callout   lipgloss.Style
	Code      lipgloss.Style
	Divider   lipgloss.Style
	Collapsed lipgloss.Style

	Selection lipgloss.Style
	Cursor    lipgloss.Style
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),

		Text:      lipgloss.NewStyle(),
		Heading:   lipgloss.NewStyle().Bold(true),
		Marker:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		TaskDone:  lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true),
		Priority:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Quote:     lipgloss.NewStyle().Foreground(lipgloss.Color("109")).Italic(true),
		Callout:   lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
		Code:      lipgloss.NewStyle().Foreground(lipgloss.Color("151")),
		Divider:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Collapsed: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),

		Selection: lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:    lipgloss.NewStyle().Reverse(true),
	}
}
