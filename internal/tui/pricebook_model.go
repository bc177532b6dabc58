package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hollisb/linesmith/internal/model"
	"github.com/hollisb/linesmith/internal/pricebook"
)

// PricebookModel is the Bubble Tea model for the price book picker.
type PricebookModel struct {
	resolver *pricebook.Resolver
	session  *Session
	ctx      context.Context

	keys   KeyMap
	styles Styles

	recordID string
	existing string
	books    []model.Pricebook
	cursor   int

	modal     *modalRequest
	resolving bool
	quitting  bool
	finished  string
	loadErr   error
}

// NewPricebookModel creates the picker UI over a resolver.
func NewPricebookModel(ctx context.Context, resolver *pricebook.Resolver, session *Session, recordID string) PricebookModel {
	return PricebookModel{
		resolver: resolver,
		session:  session,
		ctx:      ctx,
		keys:     DefaultKeyMap(),
		styles:   DefaultStyles(),
		recordID: recordID,
	}
}

type pricebooksLoadedMsg struct {
	err      error
	books    []model.Pricebook
	existing string
}

// Init loads the price books and the current association.
func (m PricebookModel) Init() tea.Cmd {
	return func() tea.Msg {
		books, err := m.resolver.Pricebooks(m.ctx)
		if err != nil {
			return pricebooksLoadedMsg{err: err}
		}
		existing, err := m.resolver.Existing(m.ctx, m.recordID)
		if err != nil {
			return pricebooksLoadedMsg{err: err}
		}
		return pricebooksLoadedMsg{books: books, existing: existing}
	}
}

// Update handles messages and updates the model.
func (m PricebookModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pricebooksLoadedMsg:
		m.books = msg.books
		m.existing = msg.existing
		m.loadErr = msg.err
		for i, b := range m.books {
			if b.ID == m.existing {
				m.cursor = i
			}
		}
		return m, nil

	case modalRequestMsg:
		req := msg.req
		m.modal = &req
		return m, nil

	case resolveDoneMsg:
		m.resolving = false
		if target, done := m.session.Target(); done {
			m.finished = "Opening " + target + "."
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.modal != nil {
			return m.updateModal(msg)
		}
		return m.updatePicker(msg)
	}
	return m, nil
}

func (m PricebookModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.modal.resp <- true
		m.modal = nil
	case "n", "esc":
		m.modal.resp <- false
		m.modal = nil
	}
	return m, nil
}

func (m PricebookModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.books)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Apply):
		if m.resolving || len(m.books) == 0 {
			return m, nil
		}
		m.resolving = true
		selected := m.books[m.cursor].ID
		return m, func() tea.Msg {
			return resolveDoneMsg{err: m.resolver.Resolve(m.ctx, m.recordID, selected)}
		}
	}
	return m, nil
}

// View renders the picker, the confirmation modal, or the exit notice.
func (m PricebookModel) View() string {
	if m.quitting {
		if m.finished != "" {
			return m.finished + "\n"
		}
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Choose Price Book"))
	b.WriteString("  ")
	b.WriteString(m.styles.Subtitle.Render(m.recordID))
	b.WriteString("\n\n")

	if m.loadErr != nil {
		b.WriteString(m.styles.Error.Render("Failed to load price books: ") + m.loadErr.Error() + "\n")
		return b.String()
	}

	for i, book := range m.books {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		line := marker + book.Name
		if book.ID == m.existing {
			line += m.styles.Subtitle.Render("  (current)")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.modal != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Modal.Render(
			m.styles.Title.Render(m.modal.title) + "\n\n" +
				m.modal.body + "\n\n" +
				m.styles.Help.Render("y confirm · n cancel")))
		b.WriteString("\n")
	} else if notice := m.viewNotice(); notice != "" {
		b.WriteString("\n")
		b.WriteString(notice)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("↑/↓ move · enter choose · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m PricebookModel) viewNotice() string {
	notice, ok := m.session.LastNotice()
	if !ok {
		return ""
	}
	style := m.styles.severityStyle(string(notice.Severity))
	return style.Render(notice.Title+": ") + notice.Message
}
