// Package tui renders the product selection wizard and the price book
// picker in the terminal. All workflow invariants live in the wizard and
// pricebook packages; this package only translates key events into
// controller transitions and controller state into views.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hollisb/linesmith/internal/catalog"
	"github.com/hollisb/linesmith/internal/wizard"
)

// focusArea tracks which part of the browsing screen receives keys.
type focusArea int

const (
	focusTable focusArea = iota
	focusFilter
	focusPills
)

// WizardModel is the Bubble Tea model for the selection wizard.
type WizardModel struct {
	ctrl    *wizard.Controller
	session *Session
	ctx     context.Context

	keys   KeyMap
	styles Styles

	table        table.Model
	filterInputs []textinput.Model
	filterIndex  int
	pillIndex    int
	focus        focusArea

	gridRow   int
	gridCol   int
	editing   bool
	editInput textinput.Model
	drafts    map[int]map[string]string

	sortDirection int
	width         int
	height        int
	loaded        bool
	quitting      bool
	finished      string
}

// NewWizardModel creates the wizard UI over a controller.
func NewWizardModel(ctx context.Context, ctrl *wizard.Controller, session *Session) WizardModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(12),
	)
	return WizardModel{
		ctrl:          ctrl,
		session:       session,
		ctx:           ctx,
		keys:          DefaultKeyMap(),
		styles:        DefaultStyles(),
		table:         t,
		drafts:        make(map[int]map[string]string),
		sortDirection: catalog.Ascending,
	}
}

// Init starts the catalog load.
func (m WizardModel) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, m.loadCatalog())
}

func (m WizardModel) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		m.ctrl.Load(m.ctx)
		return catalogLoadedMsg{}
	}
}

// Update handles messages and updates the model.
func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case catalogLoadedMsg:
		m.loaded = true
		m.rebuildFilterInputs()
		m.refreshTable()
		return m, nil

	case commitDoneMsg:
		if msg.err == nil {
			if target, done := m.session.Target(); done {
				m.finished = "Line items created. Returning to " + target + "."
			}
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if !m.loaded {
			return m, nil
		}
		if m.ctrl.Phase() == wizard.PhaseConfiguring {
			return m.updateConfiguring(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m WizardModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusFilter:
		return m.updateFilterOverlay(msg)
	case focusPills:
		return m.updatePills(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Cancel()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleSelect):
		visible := m.ctrl.Visible()
		if cursor := m.table.Cursor(); cursor >= 0 && cursor < len(visible) {
			m.ctrl.SelectRows(visible[cursor : cursor+1])
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleFilter):
		m.ctrl.OpenFilter()
		if len(m.filterInputs) > 0 {
			m.focus = focusFilter
			m.filterIndex = 0
			m.filterInputs[0].Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		if len(m.ctrl.Selection()) > 0 {
			m.focus = focusPills
			m.pillIndex = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.Sort):
		m.sortDirection = -m.sortDirection
		m.ctrl.Sort("Name", m.sortDirection)
		m.refreshTable()
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if err := m.ctrl.Advance(); err == nil {
			m.gridRow, m.gridCol = 0, 0
			m.drafts = make(map[int]map[string]string)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m WizardModel) updateFilterOverlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.ctrl.CloseFilter()
		m.blurFilters()
		m.focus = focusTable
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.filterInputs[m.filterIndex].Blur()
		m.filterIndex = (m.filterIndex + 1) % len(m.filterInputs)
		m.filterInputs[m.filterIndex].Focus()
		return m, nil

	case key.Matches(msg, m.keys.ClearFilter):
		for i := range m.filterInputs {
			m.filterInputs[i].SetValue("")
		}
		_ = m.ctrl.ClearFilter()
		m.refreshTable()
		return m, nil

	case key.Matches(msg, m.keys.Apply):
		fields := m.ctrl.FilterFields()
		for i, field := range fields {
			m.ctrl.SetFilterValue(field.APIName, m.filterInputs[i].Value())
		}
		_ = m.ctrl.ApplyFilter()
		m.refreshTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m WizardModel) updatePills(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.ctrl.Selection())
	switch {
	case msg.Type == tea.KeyEsc, key.Matches(msg, m.keys.NextField):
		m.focus = focusTable
		return m, nil

	case key.Matches(msg, m.keys.Left):
		if m.pillIndex > 0 {
			m.pillIndex--
		}
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.pillIndex < count-1 {
			m.pillIndex++
		}
		return m, nil

	case key.Matches(msg, m.keys.RemovePill):
		m.ctrl.RemoveSelection(m.pillIndex)
		count = len(m.ctrl.Selection())
		if count == 0 {
			m.focus = focusTable
		} else if m.pillIndex >= count {
			m.pillIndex = count - 1
		}
		return m, nil
	}
	return m, nil
}

func (m WizardModel) updateConfiguring(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	columns := m.ctrl.ConfigColumns()
	entries := m.ctrl.Selection()

	if m.editing {
		switch msg.Type {
		case tea.KeyEsc:
			m.editing = false
			return m, nil
		case tea.KeyEnter:
			m.setDraft(m.gridRow, columns[m.gridCol].APIName, m.editInput.Value())
			m.editing = false
			return m, nil
		}
		var cmd tea.Cmd
		m.editInput, cmd = m.editInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		_ = m.ctrl.Retreat()
		m.focus = focusTable
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.gridRow > 0 {
			m.gridRow--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.gridRow < len(entries)-1 {
			m.gridRow++
		}
		return m, nil

	case key.Matches(msg, m.keys.Left):
		if m.gridCol > 0 {
			m.gridCol--
		}
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.gridCol < len(columns)-1 {
			m.gridCol++
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if len(entries) == 0 || !columns[m.gridCol].Editable {
			return m, nil
		}
		input := textinput.New()
		input.SetValue(m.cellValue(m.gridRow, columns[m.gridCol].APIName))
		input.Focus()
		m.editInput = input
		m.editing = true
		return m, nil

	case key.Matches(msg, m.keys.Save):
		m.ctrl.MergeDrafts(m.draftEdits())
		m.drafts = make(map[int]map[string]string)
		return m, m.commit()
	}
	return m, nil
}

func (m WizardModel) commit() tea.Cmd {
	return func() tea.Msg {
		return commitDoneMsg{err: m.ctrl.Commit(m.ctx)}
	}
}

func (m *WizardModel) setDraft(row int, field, value string) {
	if m.drafts[row] == nil {
		m.drafts[row] = make(map[string]string)
	}
	m.drafts[row][field] = value
}

// draftEdits converts the accumulated cell edits into the controller's
// positional draft format.
func (m WizardModel) draftEdits() []wizard.DraftEdit {
	edits := make([]wizard.DraftEdit, 0, len(m.drafts))
	for row, fields := range m.drafts {
		copied := make(map[string]string, len(fields))
		for k, v := range fields {
			copied[k] = v
		}
		edits = append(edits, wizard.DraftEdit{
			RowID:  fmt.Sprintf("row-%d", row),
			Fields: copied,
		})
	}
	return edits
}

// cellValue returns the draft override for a cell, falling back to the
// entry's current value.
func (m WizardModel) cellValue(row int, field string) string {
	if fields, ok := m.drafts[row]; ok {
		if v, ok := fields[field]; ok {
			return v
		}
	}
	entries := m.ctrl.Selection()
	if row < len(entries) {
		return entries[row].Fields[field]
	}
	return ""
}

func (m *WizardModel) blurFilters() {
	for i := range m.filterInputs {
		m.filterInputs[i].Blur()
	}
}

func (m *WizardModel) rebuildFilterInputs() {
	fields := m.ctrl.FilterFields()
	m.filterInputs = make([]textinput.Model, len(fields))
	for i, field := range fields {
		input := textinput.New()
		input.Placeholder = field.Label
		input.CharLimit = 64
		input.Width = 24
		m.filterInputs[i] = input
	}
}

func (m *WizardModel) refreshTable() {
	columns := m.ctrl.Columns()
	tableColumns := make([]table.Column, len(columns))
	for i, col := range columns {
		width := len(col.Label) + 2
		if width < 14 {
			width = 14
		}
		tableColumns[i] = table.Column{Title: col.Label, Width: width}
	}

	visible := m.ctrl.Visible()
	rows := make([]table.Row, len(visible))
	for i, row := range visible {
		cells := make(table.Row, len(columns))
		for j, col := range columns {
			v, _ := row.Field(col.APIName)
			cells[j] = v
		}
		rows[i] = cells
	}

	m.table.SetColumns(tableColumns)
	m.table.SetRows(rows)
	if cursor := m.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}
