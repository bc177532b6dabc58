package pricebook

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollisb/linesmith/internal/model"
	"github.com/hollisb/linesmith/internal/wizard"
)

// mockStore is an in-memory Store that records the order of mutating
// calls so tests can assert delete-before-update.
type mockStore struct {
	books      []model.Pricebook
	assoc      map[string]string
	listErr    error
	getErr     error
	updateErr  error
	deleteErr  error
	mutations  []string
	deletedFor []string
}

func newMockStore() *mockStore {
	return &mockStore{
		books: []model.Pricebook{
			{ID: "pb-standard", Name: "Standard Price Book"},
			{ID: "pb-premium", Name: "Premium Price Book"},
		},
		assoc: make(map[string]string),
	}
}

func (m *mockStore) ListPricebooks(_ context.Context) ([]model.Pricebook, error) {
	return m.books, m.listErr
}

func (m *mockStore) GetParentPricebook(_ context.Context, recordID string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	return m.assoc[recordID], nil
}

func (m *mockStore) UpdateParentPricebook(_ context.Context, recordID, pricebookID string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.mutations = append(m.mutations, "update")
	m.assoc[recordID] = pricebookID
	return nil
}

func (m *mockStore) DeleteChildLineItems(_ context.Context, recordID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.mutations = append(m.mutations, "delete")
	m.deletedFor = append(m.deletedFor, recordID)
	return nil
}

// mockModal answers every confirmation with a canned response.
type mockModal struct {
	answer bool
	err    error
	asked  int
}

func (m *mockModal) Confirm(_ context.Context, _, _ string) (bool, error) {
	m.asked++
	return m.answer, m.err
}

func testResolver(store *mockStore, modal *mockModal) (*Resolver, *wizard.MockNotifier, *wizard.MockNav) {
	notifier := &wizard.MockNotifier{}
	nav := &wizard.MockNav{}
	return New(store, modal, notifier, nav), notifier, nav
}

func TestResolveRequiresSelection(t *testing.T) {
	r, _, nav := testResolver(newMockStore(), &mockModal{})
	require.Error(t, r.Resolve(context.Background(), "opp-1", ""))
	assert.Empty(t, nav.WizardOpens)
}

func TestResolveSamePricebook(t *testing.T) {
	store := newMockStore()
	store.assoc["opp-1"] = "pb-standard"
	modal := &mockModal{}
	r, notifier, nav := testResolver(store, modal)

	require.NoError(t, r.Resolve(context.Background(), "opp-1", "pb-standard"))

	assert.Empty(t, store.mutations, "re-picking the current book skips the write")
	assert.Zero(t, modal.asked)
	assert.Empty(t, notifier.Notices)
	require.Len(t, nav.WizardOpens, 1)
	assert.Equal(t, "opp-1/pb-standard", nav.WizardOpens[0])
}

func TestResolveFirstPricebook(t *testing.T) {
	store := newMockStore()
	modal := &mockModal{}
	r, notifier, nav := testResolver(store, modal)

	require.NoError(t, r.Resolve(context.Background(), "opp-1", "pb-premium"))

	assert.Equal(t, "pb-premium", store.assoc["opp-1"])
	assert.Zero(t, modal.asked, "no confirmation when nothing can be lost")
	assert.Empty(t, store.deletedFor)

	notice, ok := notifier.Last()
	require.True(t, ok)
	assert.Equal(t, "Price book updated successfully", notice.Message)
	assert.Equal(t, wizard.SeveritySuccess, notice.Severity)

	require.Len(t, nav.WizardOpens, 1)
	assert.Equal(t, "opp-1/pb-premium", nav.WizardOpens[0])
}

func TestResolveChangeConfirmed(t *testing.T) {
	store := newMockStore()
	store.assoc["opp-1"] = "pb-standard"
	r, notifier, nav := testResolver(store, &mockModal{answer: true})

	require.NoError(t, r.Resolve(context.Background(), "opp-1", "pb-premium"))

	// existing line items go first, then the association flips
	assert.Equal(t, []string{"delete", "update"}, store.mutations)
	assert.Equal(t, []string{"opp-1"}, store.deletedFor)
	assert.Equal(t, "pb-premium", store.assoc["opp-1"])

	notice, ok := notifier.Last()
	require.True(t, ok)
	assert.Equal(t, "Price book updated successfully", notice.Message)
	require.Len(t, nav.WizardOpens, 1)
}

func TestResolveChangeCanceled(t *testing.T) {
	store := newMockStore()
	store.assoc["opp-1"] = "pb-standard"
	modal := &mockModal{answer: false}
	r, notifier, nav := testResolver(store, modal)

	require.NoError(t, r.Resolve(context.Background(), "opp-1", "pb-premium"))

	assert.Equal(t, 1, modal.asked)
	assert.Empty(t, store.mutations, "cancel leaves everything untouched")
	assert.Equal(t, "pb-standard", store.assoc["opp-1"])
	assert.Empty(t, notifier.Notices)
	assert.Empty(t, nav.WizardOpens, "no hand-off on cancel")
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		mutate func(*mockStore, *mockModal)
		name   string
	}{
		{name: "lookup fails", mutate: func(s *mockStore, _ *mockModal) {
			s.getErr = errors.New("lookup failed")
		}},
		{name: "confirmation fails", mutate: func(s *mockStore, m *mockModal) {
			s.assoc["opp-1"] = "pb-standard"
			m.err = errors.New("modal torn down")
		}},
		{name: "delete fails", mutate: func(s *mockStore, m *mockModal) {
			s.assoc["opp-1"] = "pb-standard"
			m.answer = true
			s.deleteErr = errors.New("delete failed")
		}},
		{name: "update fails", mutate: func(s *mockStore, _ *mockModal) {
			s.updateErr = errors.New("update failed")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockStore()
			modal := &mockModal{}
			tt.mutate(store, modal)
			r, _, nav := testResolver(store, modal)

			require.Error(t, r.Resolve(context.Background(), "opp-1", "pb-premium"))
			assert.Empty(t, nav.WizardOpens, "no hand-off on error")
		})
	}
}

func TestResolveDeleteFailureKeepsAssociation(t *testing.T) {
	store := newMockStore()
	store.assoc["opp-1"] = "pb-standard"
	store.deleteErr = &model.RecordError{RowErrors: []model.ErrorDetail{{Message: "row locked"}}}
	r, notifier, _ := testResolver(store, &mockModal{answer: true})

	require.Error(t, r.Resolve(context.Background(), "opp-1", "pb-premium"))

	assert.Equal(t, "pb-standard", store.assoc["opp-1"], "association unchanged when cleanup fails")
	notice, ok := notifier.Last()
	require.True(t, ok)
	assert.Equal(t, "row locked", notice.Message)
	assert.True(t, notice.Sticky)
}
