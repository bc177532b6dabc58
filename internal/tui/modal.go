package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// modalRequest is one pending confirmation. The answering goroutine sends
// exactly one value on resp.
type modalRequest struct {
	resp  chan bool
	title string
	body  string
}

// ChannelModal implements the ModalPrompter contract by handing the
// request to the running Bubble Tea program and blocking for the user's
// answer. Resolve runs on a command goroutine, so blocking here never
// stalls the UI loop.
type ChannelModal struct {
	program *tea.Program
}

// NewChannelModal creates a modal prompter; Attach must be called with
// the program before the first Confirm.
func NewChannelModal() *ChannelModal {
	return &ChannelModal{}
}

// Attach binds the prompter to a running program.
func (m *ChannelModal) Attach(p *tea.Program) {
	m.program = p
}

// Confirm displays the modal and waits for confirm or cancel.
func (m *ChannelModal) Confirm(ctx context.Context, title, body string) (bool, error) {
	req := modalRequest{
		resp:  make(chan bool, 1),
		title: title,
		body:  body,
	}
	m.program.Send(modalRequestMsg{req: req})

	select {
	case ok := <-req.resp:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
