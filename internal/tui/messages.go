package tui

// catalogLoadedMsg signals that the controller finished its initial fetch.
type catalogLoadedMsg struct{}

// commitDoneMsg carries the outcome of a commit attempt.
type commitDoneMsg struct {
	err error
}

// resolveDoneMsg carries the outcome of a price book resolution attempt.
type resolveDoneMsg struct {
	err error
}

// modalRequestMsg asks the model to display a confirmation modal.
type modalRequestMsg struct {
	req modalRequest
}
