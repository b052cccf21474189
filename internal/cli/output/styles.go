package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles shared by every command.
type Styles struct {
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	AlertBox  lipgloss.Style
	AlertText lipgloss.Style
}

// NewStyles builds styles bound to lr so colour output follows the
// renderer's terminal profile.
func NewStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(lipgloss.Color("244")),
		Success: lr.NewStyle().Foreground(lipgloss.Color("42")),
		AlertBox: lr.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 4),
		AlertText: lr.NewStyle().Bold(true),
	}
}
