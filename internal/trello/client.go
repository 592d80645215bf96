// Package trello is a minimal client for the board, list, card, label and
// checklist operations of the Trello REST API.
package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/pmorille/trello-weekly/internal/constants"
	"github.com/pmorille/trello-weekly/internal/logging"
)

// DefaultTimeout bounds each individual API request
const DefaultTimeout = 30 * time.Second

// maxErrorBodyBytes limits how much of an error response body is kept
const maxErrorBodyBytes = 512

// Options configures a Client
type Options struct {
	// BaseURL is the API root, e.g. https://api.trello.com/1
	BaseURL string
	Key     string
	Token   string
	BoardID string
	// Timeout falls back to DefaultTimeout when zero
	Timeout time.Duration
}

// Client is an authenticated Trello API client scoped to a single board
type Client struct {
	baseURL  string
	key      string
	token    string
	boardID  string
	http     *http.Client
	requests atomic.Int64
	logger   zerolog.Logger
}

// NewClient creates a new Client instance
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		key:     opts.Key,
		token:   opts.Token,
		boardID: opts.BoardID,
		http:    &http.Client{Timeout: timeout},
		logger:  logging.GetLogger("trello"),
	}
}

// Requests returns how many API requests the client has issued
func (c *Client) Requests() int64 {
	return c.requests.Load()
}

// do issues a single API request with credentials attached and decodes the
// JSON response into out when out is non-nil
func (c *Client) do(ctx context.Context, method, path string, params url.Values, out interface{}) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("invalid request URL for %s: %w", path, err)
	}

	query := u.Query()
	query.Set("key", c.key)
	query.Set("token", c.token)
	for name, values := range params {
		for _, value := range values {
			query.Add(name, value)
		}
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constants.UserAgent)

	c.requests.Inc()
	c.logger.Debug().Str("method", method).Str("path", path).Msg("Issuing API request")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("Request failed")
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Body:       strings.TrimSpace(string(body)),
		}
		c.logger.Error().Int("status", resp.StatusCode).Str("method", method).Str("path", path).Msg("API returned an error")
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("Failed to decode response")
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// BoardLists returns all open lists on the board
func (c *Client) BoardLists(ctx context.Context) ([]List, error) {
	c.logger.Debug().Str("board_id", c.boardID).Msg("Fetching board lists")

	var lists []List
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/boards/%s/lists", c.boardID), nil, &lists); err != nil {
		return nil, fmt.Errorf("failed to fetch board lists: %w", err)
	}
	return lists, nil
}

// ListExists reports whether a list with the given name exists on the board
func (c *Client) ListExists(ctx context.Context, name string) (bool, error) {
	lists, err := c.BoardLists(ctx)
	if err != nil {
		return false, err
	}

	for _, list := range lists {
		if list.Name == name {
			c.logger.Debug().Str("list", name).Str("list_id", list.ID).Msg("List already present on board")
			return true, nil
		}
	}
	return false, nil
}

// CreateList creates a new list on the board and returns its ID
func (c *Client) CreateList(ctx context.Context, name string, pos constants.Position) (string, error) {
	c.logger.Info().Str("list", name).Str("position", pos.String()).Msg("Creating list")

	params := url.Values{}
	params.Set("name", name)
	params.Set("idBoard", c.boardID)
	params.Set("pos", pos.APIValue())

	var list List
	if err := c.do(ctx, http.MethodPost, "/lists", params, &list); err != nil {
		return "", fmt.Errorf("failed to create list %q: %w", name, err)
	}
	return list.ID, nil
}

// BoardLabels returns the board's named labels as a name-to-ID map
func (c *Client) BoardLabels(ctx context.Context) (map[string]string, error) {
	c.logger.Debug().Str("board_id", c.boardID).Msg("Fetching board labels")

	var labels []Label
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/boards/%s/labels", c.boardID), nil, &labels); err != nil {
		return nil, fmt.Errorf("failed to fetch board labels: %w", err)
	}

	byName := make(map[string]string, len(labels))
	for _, label := range labels {
		if label.Name == "" {
			continue
		}
		byName[label.Name] = label.ID
	}
	return byName, nil
}

// CreateCard creates a card and returns its ID
func (c *Client) CreateCard(ctx context.Context, req CardRequest) (string, error) {
	c.logger.Info().Str("card", req.Name).Msg("Creating card")

	params := url.Values{}
	params.Set("idList", req.ListID)
	params.Set("name", req.Name)
	params.Set("pos", constants.PositionBottom.APIValue())
	if !req.Due.IsZero() {
		params.Set("due", req.Due.Format(time.RFC3339))
	}
	if len(req.LabelIDs) > 0 {
		params.Set("idLabels", strings.Join(req.LabelIDs, ","))
	}
	if req.Description != "" {
		params.Set("desc", req.Description)
	}

	var card Card
	if err := c.do(ctx, http.MethodPost, "/cards", params, &card); err != nil {
		return "", fmt.Errorf("failed to create card %q: %w", req.Name, err)
	}
	return card.ID, nil
}

// AttachNewLabel creates a board label with the given name, attaches it to
// the card and returns the new label's ID
func (c *Client) AttachNewLabel(ctx context.Context, cardID, name string) (string, error) {
	c.logger.Info().Str("card_id", cardID).Str("label", name).Msg("Creating and attaching label")

	params := url.Values{}
	params.Set("name", name)

	var label Label
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/cards/%s/labels", cardID), params, &label); err != nil {
		return "", fmt.Errorf("failed to attach label %q: %w", name, err)
	}
	return label.ID, nil
}

// CreateChecklist creates a checklist on a card and returns its ID
func (c *Client) CreateChecklist(ctx context.Context, cardID, name string) (string, error) {
	c.logger.Info().Str("card_id", cardID).Str("checklist", name).Msg("Creating checklist")

	params := url.Values{}
	params.Set("idCard", cardID)
	params.Set("name", name)

	var checklist Checklist
	if err := c.do(ctx, http.MethodPost, "/checklists", params, &checklist); err != nil {
		return "", fmt.Errorf("failed to create checklist %q: %w", name, err)
	}
	return checklist.ID, nil
}

// AddChecklistItem appends an item to a checklist and returns the item's ID
func (c *Client) AddChecklistItem(ctx context.Context, checklistID, text string) (string, error) {
	c.logger.Debug().Str("checklist_id", checklistID).Str("item", text).Msg("Adding checklist item")

	params := url.Values{}
	params.Set("name", text)

	var item CheckItem
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/checklists/%s/checkItems", checklistID), params, &item); err != nil {
		return "", fmt.Errorf("failed to add checklist item %q: %w", text, err)
	}
	return item.ID, nil
}
