// Package provision builds the weekly list and its cards on the Trello board
package provision

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pmorille/trello-weekly/internal/config"
	"github.com/pmorille/trello-weekly/internal/logging"
	"github.com/pmorille/trello-weekly/internal/schedule"
	"github.com/pmorille/trello-weekly/internal/signals"
	"github.com/pmorille/trello-weekly/internal/trello"
)

// Summary reports what a provisioning run did on the board
type Summary struct {
	// Week is the ISO week number the list was created for
	Week int
	// ListTitle is the name of the weekly list
	ListTitle string
	// ListID is the Trello ID of the created list, empty on dry runs
	ListID string
	// Cards is the number of cards created
	Cards int
	// Labels is the number of labels created on the board during the run
	Labels int
	// Checklists is the number of checklists added to cards
	Checklists int
	// Items is the number of checklist items added
	Items int
	// Skipped is true when the list already existed and nothing was created
	Skipped bool
	// DryRun is true when no Trello calls were made
	DryRun bool
}

// Provisioner creates the weekly list and populates it with the configured cards
type Provisioner struct {
	client trello.API
	logger zerolog.Logger
}

// New creates a new Provisioner using the given Trello client
func New(client trello.API) *Provisioner {
	return &Provisioner{
		client: client,
		logger: logging.GetLogger("provision"),
	}
}

// Run creates the weekly list described by the plan and fills it with cards.
// It aborts on the first Trello error; entities created before the failure
// remain on the board. When the plan is a dry run it only announces what
// would be created, without touching the board.
func (p *Provisioner) Run(ctx context.Context, plan *schedule.Context, cards []config.CardTemplate) (*Summary, error) {
	if plan.DryRun {
		return p.preview(ctx, plan, cards)
	}

	exists, err := p.client.ListExists(ctx, plan.ListTitle)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing list %q: %w", plan.ListTitle, err)
	}
	if exists {
		p.logger.Warn().
			Str("list", plan.ListTitle).
			Int("week", plan.Week).
			Msg("List already exists on the board, skipping creation")
		return &Summary{Week: plan.Week, ListTitle: plan.ListTitle, Skipped: true}, nil
	}

	listID, err := p.client.CreateList(ctx, plan.ListTitle, plan.Position)
	if err != nil {
		return nil, err
	}
	p.logger.Info().
		Str("list", plan.ListTitle).
		Str("list_id", listID).
		Str("position", plan.Position.String()).
		Msg("Created weekly list")
	signals.EmitListCreated(ctx, plan.ListTitle, listID, plan.Position, false)

	// Fetched once per run; labels created along the way are added to the map
	// so later cards reuse them instead of creating duplicates.
	labels, err := p.client.BoardLabels(ctx)
	if err != nil {
		return nil, err
	}
	p.logger.Debug().Int("labels", len(labels)).Msg("Fetched board labels")

	summary := &Summary{Week: plan.Week, ListTitle: plan.ListTitle, ListID: listID}
	for _, card := range cards {
		if err := p.createCard(ctx, plan, listID, card, labels, summary); err != nil {
			return nil, fmt.Errorf("failed to provision card %q: %w", card.Title, err)
		}
	}

	return summary, nil
}

// preview walks the card templates and emits the same progress signals a real
// run would, without making any Trello calls.
func (p *Provisioner) preview(ctx context.Context, plan *schedule.Context, cards []config.CardTemplate) (*Summary, error) {
	p.logger.Info().
		Str("list", plan.ListTitle).
		Int("week", plan.Week).
		Int("cards", len(cards)).
		Msg("Dry run, no changes will be made")

	signals.EmitListCreated(ctx, plan.ListTitle, "", plan.Position, true)

	summary := &Summary{Week: plan.Week, ListTitle: plan.ListTitle, DryRun: true}
	for _, card := range cards {
		due := plan.DueDate(card.DayOfWeek, card.Hour, card.Minute)
		signals.EmitCardCreated(ctx, card.Title, "", due, len(card.Labels), true)
		summary.Cards++
		for _, checklist := range card.Checklists {
			summary.Checklists++
			summary.Items += len(checklist.Items)
		}
	}

	return summary, nil
}

// createCard creates a single card with its due date, labels and checklists.
// Labels already on the board ride along on the create call; missing ones are
// created on the board afterwards and cached in the labels map.
func (p *Provisioner) createCard(ctx context.Context, plan *schedule.Context, listID string, card config.CardTemplate, labels map[string]string, summary *Summary) error {
	due := plan.DueDate(card.DayOfWeek, card.Hour, card.Minute)

	known := make([]string, 0, len(card.Labels))
	var missing []string
	for _, name := range card.Labels {
		if id, ok := labels[name]; ok {
			known = append(known, id)
		} else {
			missing = append(missing, name)
		}
	}

	cardID, err := p.client.CreateCard(ctx, trello.CardRequest{
		ListID:      listID,
		Name:        card.Title,
		Due:         due,
		Description: card.Description,
		LabelIDs:    known,
	})
	if err != nil {
		return err
	}
	p.logger.Debug().
		Str("card", card.Title).
		Str("card_id", cardID).
		Time("due", due).
		Msg("Created card")

	for _, name := range missing {
		labelID, err := p.client.AttachNewLabel(ctx, cardID, name)
		if err != nil {
			return err
		}
		labels[name] = labelID
		summary.Labels++
		p.logger.Debug().
			Str("label", name).
			Str("label_id", labelID).
			Msg("Created board label")
	}

	for _, checklist := range card.Checklists {
		checklistID, err := p.client.CreateChecklist(ctx, cardID, checklist.Name)
		if err != nil {
			return err
		}
		summary.Checklists++
		for _, item := range checklist.Items {
			if _, err := p.client.AddChecklistItem(ctx, checklistID, item); err != nil {
				return err
			}
			summary.Items++
		}
		p.logger.Debug().
			Str("checklist", checklist.Name).
			Int("items", len(checklist.Items)).
			Msg("Added checklist")
	}

	signals.EmitCardCreated(ctx, card.Title, cardID, due, len(card.Labels), false)
	summary.Cards++

	return nil
}
