package trello

import (
	"context"

	"github.com/pmorille/trello-weekly/internal/constants"
)

// API defines the interface for the Trello operations used by a weekly run
type API interface {
	// ListExists reports whether a list with the given name exists on the board
	ListExists(ctx context.Context, name string) (bool, error)

	// CreateList creates a new list on the board and returns its ID
	CreateList(ctx context.Context, name string, pos constants.Position) (string, error)

	// BoardLabels returns the board's named labels as a name-to-ID map
	BoardLabels(ctx context.Context) (map[string]string, error)

	// CreateCard creates a card and returns its ID
	CreateCard(ctx context.Context, req CardRequest) (string, error)

	// AttachNewLabel creates a board label, attaches it to the card and
	// returns the new label's ID
	AttachNewLabel(ctx context.Context, cardID, name string) (string, error)

	// CreateChecklist creates a checklist on a card and returns its ID
	CreateChecklist(ctx context.Context, cardID, name string) (string, error)

	// AddChecklistItem appends an item to a checklist and returns the item's ID
	AddChecklistItem(ctx context.Context, checklistID, text string) (string, error)
}

// Ensure Client implements API
var _ API = (*Client)(nil)
