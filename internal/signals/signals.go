package signals

import (
	"context"
	"time"

	"github.com/maniartech/signals"

	"github.com/pmorille/trello-weekly/internal/constants"
)

// ListCreatedData contains data associated with the weekly list signal
type ListCreatedData struct {
	Title    string
	ListID   string // empty on dry runs
	Position constants.Position
	DryRun   bool
}

// CardCreatedData contains data associated with the card creation signal
type CardCreatedData struct {
	Title  string
	CardID string // empty on dry runs
	Due    time.Time
	Labels int
	DryRun bool
}

// Signal definitions using generics. Synchronous signals keep progress
// reporting ordered with the API calls that caused it.
var ListCreated = signals.NewSync[ListCreatedData]()
var CardCreated = signals.NewSync[CardCreatedData]()

// EmitListCreated emits a signal when the weekly list is created or planned
func EmitListCreated(ctx context.Context, title, listID string, position constants.Position, dryRun bool) {
	ListCreated.Emit(ctx, ListCreatedData{
		Title:    title,
		ListID:   listID,
		Position: position,
		DryRun:   dryRun,
	})
}

// EmitCardCreated emits a signal when a card is created or planned
func EmitCardCreated(ctx context.Context, title, cardID string, due time.Time, labels int, dryRun bool) {
	CardCreated.Emit(ctx, CardCreatedData{
		Title:  title,
		CardID: cardID,
		Due:    due,
		Labels: labels,
		DryRun: dryRun,
	})
}

// OnListCreated registers a handler for weekly list events
func OnListCreated(handler func(ctx context.Context, data ListCreatedData), key ...string) {
	if len(key) > 0 {
		ListCreated.AddListener(handler, key[0])
	} else {
		ListCreated.AddListener(handler)
	}
}

// OnCardCreated registers a handler for card creation events
func OnCardCreated(handler func(ctx context.Context, data CardCreatedData), key ...string) {
	if len(key) > 0 {
		CardCreated.AddListener(handler, key[0])
	} else {
		CardCreated.AddListener(handler)
	}
}
