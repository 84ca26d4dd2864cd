package output

import "github.com/charmbracelet/lipgloss"

// Styles is the lipgloss style set shared by text-mode command output.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Warn    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles returns the default style set.
func DefaultStyles() *Styles {
	return &Styles{
		Header1: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1),
		Header2: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Title:   lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}
