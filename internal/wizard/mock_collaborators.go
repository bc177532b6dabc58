package wizard

import (
	"context"
	"fmt"
	"sync"

	"github.com/hollisb/linesmith/internal/model"
)

// MockSource is a test implementation of the CatalogSource interface with
// canned payloads and injectable fetch failures.
type MockSource struct {
	Payload        *CatalogPayload
	ConfigColumns  []model.ConfigColumn
	FilterFields   []model.FilterField
	Candidates     []model.CatalogRow
	CatalogErr     error
	ConfigErr      error
	FieldsErr      error
	CandidatesErr  error
	CatalogCalls   int
	ConfigCalls    int
	FieldCalls     int
	CandidateCalls int
}

// FetchCatalog returns the canned catalog payload.
func (m *MockSource) FetchCatalog(_ context.Context, _, _ string) (*CatalogPayload, error) {
	m.CatalogCalls++
	if m.CatalogErr != nil {
		return nil, m.CatalogErr
	}
	return m.Payload, nil
}

// FetchConfigColumns returns the canned configuration schema.
func (m *MockSource) FetchConfigColumns(_ context.Context, _ string) ([]model.ConfigColumn, error) {
	m.ConfigCalls++
	return m.ConfigColumns, m.ConfigErr
}

// FetchFilterFields returns the canned filter fields.
func (m *MockSource) FetchFilterFields(_ context.Context) ([]model.FilterField, error) {
	m.FieldCalls++
	return m.FilterFields, m.FieldsErr
}

// FetchFilterCandidates returns the canned filter candidate rows.
func (m *MockSource) FetchFilterCandidates(_ context.Context, _ string) ([]model.CatalogRow, error) {
	m.CandidateCalls++
	return m.Candidates, m.CandidatesErr
}

// MockCreateCall records one CreateChildRecord request.
type MockCreateCall struct {
	Fields    map[string]string
	ChildType string
	ID        string
	Err       error
}

// MockRecordAPI is a test implementation of the RecordAPI interface. It
// keeps the set of live records so tests can assert all-or-nothing
// outcomes, and fails creations matched by the FailWhen predicate.
type MockRecordAPI struct {
	FailWhen    func(fields map[string]string) error
	DeleteErrs  map[string]error
	Records     map[string]map[string]string
	CreateCalls []MockCreateCall
	DeleteCalls []string
	mu          sync.Mutex
	nextID      int
}

// NewMockRecordAPI creates an empty mock record store.
func NewMockRecordAPI() *MockRecordAPI {
	return &MockRecordAPI{
		Records:    make(map[string]map[string]string),
		DeleteErrs: make(map[string]error),
	}
}

// CreateChildRecord stores the record unless the failure predicate
// matches.
func (m *MockRecordAPI) CreateChildRecord(_ context.Context, childType string, fields map[string]string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := MockCreateCall{ChildType: childType, Fields: fields}
	if m.FailWhen != nil {
		if err := m.FailWhen(fields); err != nil {
			call.Err = err
			m.CreateCalls = append(m.CreateCalls, call)
			return "", err
		}
	}

	m.nextID++
	id := fmt.Sprintf("rec-%03d", m.nextID)
	m.Records[id] = fields
	call.ID = id
	m.CreateCalls = append(m.CreateCalls, call)
	return id, nil
}

// DeleteRecord removes a stored record. Deleting an unknown record
// returns an entity-is-deleted error, matching the platform contract.
func (m *MockRecordAPI) DeleteRecord(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, id)
	if err, ok := m.DeleteErrs[id]; ok {
		return err
	}
	if _, ok := m.Records[id]; !ok {
		return &model.RecordError{
			Op:        "delete " + id,
			RowErrors: []model.ErrorDetail{{Code: model.CodeEntityDeleted, Message: "entity is deleted"}},
		}
	}
	delete(m.Records, id)
	return nil
}

// Live returns how many records currently exist.
func (m *MockRecordAPI) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Records)
}

// MockNotice records one notification.
type MockNotice struct {
	Title    string
	Message  string
	Severity Severity
	Sticky   bool
}

// MockNotifier is a test implementation of the Notifier interface.
type MockNotifier struct {
	Notices []MockNotice
	mu      sync.Mutex
}

// Notify records the notification.
func (m *MockNotifier) Notify(title, message string, severity Severity, sticky bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notices = append(m.Notices, MockNotice{Title: title, Message: message, Severity: severity, Sticky: sticky})
}

// Last returns the most recent notification, if any.
func (m *MockNotifier) Last() (MockNotice, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Notices) == 0 {
		return MockNotice{}, false
	}
	return m.Notices[len(m.Notices)-1], true
}

// MockNav is a test implementation of the Navigator interface.
type MockNav struct {
	RecordOpens []string
	WizardOpens []string
}

// OpenRecord records a navigation to a record view.
func (m *MockNav) OpenRecord(kind model.ParentKind, recordID string) {
	m.RecordOpens = append(m.RecordOpens, kind.String()+"/"+recordID)
}

// OpenWizard records a navigation into the wizard page.
func (m *MockNav) OpenWizard(recordID, pricebookID string) {
	m.WizardOpens = append(m.WizardOpens, recordID+"/"+pricebookID)
}
