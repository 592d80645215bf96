package trello

import (
	"context"
	"fmt"

	"github.com/pmorille/trello-weekly/internal/constants"
)

// Ensure MockAPI implements API
var _ API = (*MockAPI)(nil)

// MockAPI is a mock implementation of API for testing
type MockAPI struct {
	// Calls records every operation in invocation order as "operation:detail"
	Calls []string

	// ExistingLists holds names of lists already present on the board
	ExistingLists []string

	// BoardLabelMap is the label set returned by BoardLabels
	BoardLabelMap map[string]string

	// FailOn makes the named operation return FailErr
	FailOn  string
	FailErr error

	// CreatedCards records each request passed to CreateCard
	CreatedCards []CardRequest

	// LastPosition records the position of the most recent CreateList call
	LastPosition constants.Position

	counters map[string]int
}

// NewMockAPI creates a new MockAPI
func NewMockAPI() *MockAPI {
	return &MockAPI{
		BoardLabelMap: map[string]string{},
		counters:      map[string]int{},
	}
}

// nextID synthesizes a sequential ID for the given kind, e.g. "card1"
func (m *MockAPI) nextID(kind string) string {
	m.counters[kind]++
	return fmt.Sprintf("%s%d", kind, m.counters[kind])
}

// fail returns the configured error when op matches FailOn
func (m *MockAPI) fail(op string) error {
	if m.FailOn != op {
		return nil
	}
	if m.FailErr != nil {
		return m.FailErr
	}
	return fmt.Errorf("%s failed", op)
}

// ListExists reports whether the name was preloaded into ExistingLists
func (m *MockAPI) ListExists(_ context.Context, name string) (bool, error) {
	m.Calls = append(m.Calls, "list-exists:"+name)
	if err := m.fail("list-exists"); err != nil {
		return false, err
	}
	for _, existing := range m.ExistingLists {
		if existing == name {
			return true, nil
		}
	}
	return false, nil
}

// CreateList records the call and returns a synthesized list ID
func (m *MockAPI) CreateList(_ context.Context, name string, pos constants.Position) (string, error) {
	m.Calls = append(m.Calls, "create-list:"+name)
	m.LastPosition = pos
	if err := m.fail("create-list"); err != nil {
		return "", err
	}
	return m.nextID("list"), nil
}

// BoardLabels returns a copy of the configured board labels
func (m *MockAPI) BoardLabels(_ context.Context) (map[string]string, error) {
	m.Calls = append(m.Calls, "board-labels")
	if err := m.fail("board-labels"); err != nil {
		return nil, err
	}
	labels := make(map[string]string, len(m.BoardLabelMap))
	for name, id := range m.BoardLabelMap {
		labels[name] = id
	}
	return labels, nil
}

// CreateCard records the request and returns a synthesized card ID
func (m *MockAPI) CreateCard(_ context.Context, req CardRequest) (string, error) {
	m.Calls = append(m.Calls, "create-card:"+req.Name)
	if err := m.fail("create-card"); err != nil {
		return "", err
	}
	m.CreatedCards = append(m.CreatedCards, req)
	return m.nextID("card"), nil
}

// AttachNewLabel records the call and returns a synthesized label ID
func (m *MockAPI) AttachNewLabel(_ context.Context, cardID, name string) (string, error) {
	m.Calls = append(m.Calls, "attach-label:"+cardID+":"+name)
	if err := m.fail("attach-label"); err != nil {
		return "", err
	}
	return m.nextID("label"), nil
}

// CreateChecklist records the call and returns a synthesized checklist ID
func (m *MockAPI) CreateChecklist(_ context.Context, cardID, name string) (string, error) {
	m.Calls = append(m.Calls, "create-checklist:"+cardID+":"+name)
	if err := m.fail("create-checklist"); err != nil {
		return "", err
	}
	return m.nextID("checklist"), nil
}

// AddChecklistItem records the call and returns a synthesized item ID
func (m *MockAPI) AddChecklistItem(_ context.Context, checklistID, text string) (string, error) {
	m.Calls = append(m.Calls, "add-item:"+checklistID+":"+text)
	if err := m.fail("add-item"); err != nil {
		return "", err
	}
	return m.nextID("item"), nil
}
