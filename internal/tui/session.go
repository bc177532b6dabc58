package tui

import (
	"sync"

	"github.com/hollisb/linesmith/internal/model"
	"github.com/hollisb/linesmith/internal/wizard"
)

// Notice is one user notification captured during a workflow run.
type Notice struct {
	Title    string
	Message  string
	Severity wizard.Severity
	Sticky   bool
}

// Session implements the Notifier and Navigator contracts for a terminal
// run. Notifications accumulate for the view to render; navigation is
// recorded as the destination to report once the program exits.
type Session struct {
	mu               sync.Mutex
	notices          []Notice
	target           string
	handOffRecord    string
	handOffPricebook string
	done             bool
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// Notify records a notification.
func (s *Session) Notify(title, message string, severity wizard.Severity, sticky bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, Notice{Title: title, Message: message, Severity: severity, Sticky: sticky})
}

// OpenRecord records a hand-off to the parent record view and marks the
// session finished.
func (s *Session) OpenRecord(kind model.ParentKind, recordID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = kind.String() + " " + recordID
	s.done = true
}

// OpenWizard records a hand-off into the product selection wizard.
func (s *Session) OpenWizard(recordID, pricebookID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = "wizard for " + recordID + " with price book " + pricebookID
	s.handOffRecord = recordID
	s.handOffPricebook = pricebookID
	s.done = true
}

// HandOff returns the wizard hand-off parameters recorded by OpenWizard.
func (s *Session) HandOff() (recordID, pricebookID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handOffRecord, s.handOffPricebook
}

// LastNotice returns the most recent notification, if any.
func (s *Session) LastNotice() (Notice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.notices) == 0 {
		return Notice{}, false
	}
	return s.notices[len(s.notices)-1], true
}

// Target returns the recorded navigation destination and whether the
// workflow finished.
func (s *Session) Target() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target, s.done
}
