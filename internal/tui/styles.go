package tui

import "github.com/charmbracelet/lipgloss"

// Styles defines the visual style for the wizard UI.
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Help      lipgloss.Style
	Pill      lipgloss.Style
	PillFocus lipgloss.Style
	Note      lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
	Modal     lipgloss.Style
	GridCell  lipgloss.Style
	GridFocus lipgloss.Style
	GridHead  lipgloss.Style
	Overlay   lipgloss.Style
}

// DefaultStyles returns the default wizard styling.
func DefaultStyles() Styles {
	var (
		primary = lipgloss.Color("#7c3aed")
		muted   = lipgloss.Color("#6b7280")
		border  = lipgloss.Color("#404040")
		success = lipgloss.Color("#10b981")
		errCol  = lipgloss.Color("#ef4444")
		warning = lipgloss.Color("#f59e0b")
		info    = lipgloss.Color("#3b82f6")
	)

	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(primary),
		Subtitle:  lipgloss.NewStyle().Foreground(muted),
		Help:      lipgloss.NewStyle().Foreground(muted),
		Pill:      lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(border),
		PillFocus: lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(primary),
		Note:      lipgloss.NewStyle().Italic(true).Foreground(warning),
		Success:   lipgloss.NewStyle().Bold(true).Foreground(success),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(errCol),
		Warning:   lipgloss.NewStyle().Foreground(warning),
		Info:      lipgloss.NewStyle().Foreground(info),
		Modal:     lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.DoubleBorder()).BorderForeground(primary),
		GridCell:  lipgloss.NewStyle().Padding(0, 1),
		GridFocus: lipgloss.NewStyle().Padding(0, 1).Reverse(true),
		GridHead:  lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true),
		Overlay:   lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder()).BorderForeground(border),
	}
}

// severityStyle maps a notice severity to its style.
func (s Styles) severityStyle(severity string) lipgloss.Style {
	switch severity {
	case "success":
		return s.Success
	case "error":
		return s.Error
	case "warning":
		return s.Warning
	}
	return s.Info
}
