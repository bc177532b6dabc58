package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hollisb/linesmith/internal/wizard"
)

// View renders the wizard for the current phase.
func (m WizardModel) View() string {
	if m.quitting {
		if m.finished != "" {
			return m.finished + "\n"
		}
		return ""
	}
	if !m.loaded {
		return m.styles.Subtitle.Render("Loading product catalog...") + "\n"
	}

	if m.ctrl.Phase() == wizard.PhaseConfiguring {
		return m.viewConfiguring()
	}
	return m.viewBrowsing()
}

func (m WizardModel) viewBrowsing() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Select Products"))
	b.WriteString("  ")
	b.WriteString(m.styles.Subtitle.Render(m.ctrl.Kind().String() + " " + m.ctrl.RecordID()))
	b.WriteString("\n\n")

	tableView := m.table.View()
	if m.ctrl.FilterOpen() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableView, "  ", m.viewFilterOverlay()))
	} else {
		b.WriteString(tableView)
	}
	b.WriteString("\n")

	if pills := m.viewPills(); pills != "" {
		b.WriteString("\n")
		b.WriteString(pills)
		b.WriteString("\n")
	}

	if notice := m.viewNotice(); notice != "" {
		b.WriteString("\n")
		b.WriteString(notice)
		b.WriteString("\n")
	}

	help := "space select · f filter · o sort · tab pills · n next · q cancel"
	if !m.ctrl.CanAdvance() {
		help = "space select · f filter · o sort · q cancel"
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(help))
	b.WriteString("\n")
	return b.String()
}

func (m WizardModel) viewFilterOverlay() string {
	fields := m.ctrl.FilterFields()
	lines := make([]string, 0, len(fields)*2+2)
	lines = append(lines, m.styles.Title.Render("Filters"))
	for i, field := range fields {
		lines = append(lines, m.styles.Subtitle.Render(field.Label))
		lines = append(lines, m.filterInputs[i].View())
	}
	lines = append(lines, m.styles.Help.Render("enter apply · ctrl+l clear · esc close"))
	return m.styles.Overlay.Render(strings.Join(lines, "\n"))
}

func (m WizardModel) viewPills() string {
	entries := m.ctrl.Selection()
	if len(entries) == 0 {
		return ""
	}
	pills := make([]string, len(entries))
	for i, entry := range entries {
		style := m.styles.Pill
		if m.focus == focusPills && i == m.pillIndex {
			style = m.styles.PillFocus
		}
		pills[i] = style.Render(entry.Label)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, pills...)
	if m.focus == focusPills {
		row += "\n" + m.styles.Help.Render("←/→ move · x remove · esc back to table")
	}
	return row
}

func (m WizardModel) viewConfiguring() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Configure Line Items"))
	b.WriteString("\n")
	b.WriteString(m.styles.Note.Render(m.ctrl.Note()))
	b.WriteString("\n\n")
	b.WriteString(m.viewGrid())
	b.WriteString("\n")

	if notice := m.viewNotice(); notice != "" {
		b.WriteString("\n")
		b.WriteString(notice)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.editing {
		b.WriteString(m.styles.Help.Render("enter save cell · esc cancel edit"))
	} else {
		b.WriteString(m.styles.Help.Render("arrows move · enter edit · s save line items · b back"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m WizardModel) viewGrid() string {
	columns := m.ctrl.ConfigColumns()
	entries := m.ctrl.Selection()

	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col.Label) + 2
		if widths[i] < 14 {
			widths[i] = 14
		}
	}

	header := make([]string, len(columns))
	for i, col := range columns {
		label := col.Label
		if col.DisplayReadOnlyIcon {
			label += " 🔒"
		}
		header[i] = m.styles.GridHead.Width(widths[i]).Render(label)
	}

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for r := range entries {
		cells := make([]string, len(columns))
		for c, col := range columns {
			value := m.cellValue(r, col.APIName)
			if m.editing && r == m.gridRow && c == m.gridCol {
				cells[c] = m.styles.GridFocus.Width(widths[c]).Render(m.editInput.View())
				continue
			}
			style := m.styles.GridCell
			if r == m.gridRow && c == m.gridCol {
				style = m.styles.GridFocus
			}
			cells[c] = style.Width(widths[c]).Render(value)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (m WizardModel) viewNotice() string {
	notice, ok := m.session.LastNotice()
	if !ok {
		return ""
	}
	style := m.styles.severityStyle(string(notice.Severity))
	return style.Render(notice.Title+": ") + notice.Message
}
