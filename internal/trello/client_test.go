package trello

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmorille/trello-weekly/internal/constants"
)

// newTestClient starts a test server and returns a client pointed at it
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(Options{
		BaseURL: srv.URL,
		Key:     "test-key",
		Token:   "test-token",
		BoardID: "board123",
	})
}

func TestClient_CreateList(t *testing.T) {
	tests := []struct {
		name     string
		position constants.Position
	}{
		{
			name:     "top position",
			position: constants.PositionTop,
		},
		{
			name:     "bottom position",
			position: constants.PositionBottom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/lists", r.URL.Path)

				query := r.URL.Query()
				assert.Equal(t, "test-key", query.Get("key"))
				assert.Equal(t, "test-token", query.Get("token"))
				assert.Equal(t, "Todo w05", query.Get("name"))
				assert.Equal(t, "board123", query.Get("idBoard"))
				assert.Equal(t, tt.position.APIValue(), query.Get("pos"))
				assert.Equal(t, constants.UserAgent, r.Header.Get("User-Agent"))

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"id": "list123", "name": "Todo w05", "idBoard": "board123"}`))
			}))

			listID, err := client.CreateList(context.Background(), "Todo w05", tt.position)
			require.NoError(t, err)
			assert.Equal(t, "list123", listID)
			assert.Equal(t, int64(1), client.Requests())
		})
	}
}

func TestClient_ListExists(t *testing.T) {
	tests := []struct {
		name     string
		lookup   string
		expected bool
	}{
		{
			name:     "list present on board",
			lookup:   "Todo w05",
			expected: true,
		},
		{
			name:     "list absent from board",
			lookup:   "Todo w06",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/boards/board123/lists", r.URL.Path)

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`[{"id": "l1", "name": "Todo w05"}, {"id": "l2", "name": "Backlog"}]`))
			}))

			exists, err := client.ListExists(context.Background(), tt.lookup)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, exists)
		})
	}
}

func TestClient_BoardLabels(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/boards/board123/labels", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": "l1", "name": "Work", "color": "blue"},
			{"id": "l2", "name": "", "color": "green"},
			{"id": "l3", "name": "Home", "color": "red"}
		]`))
	}))

	labels, err := client.BoardLabels(context.Background())
	require.NoError(t, err)

	// Unnamed labels are dropped from the map
	assert.Len(t, labels, 2)
	assert.Equal(t, "l1", labels["Work"])
	assert.Equal(t, "l3", labels["Home"])
}

func TestClient_CreateCard_AllFields(t *testing.T) {
	due := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cards", r.URL.Path)

		query := r.URL.Query()
		assert.Equal(t, "list123", query.Get("idList"))
		assert.Equal(t, "Plan the week", query.Get("name"))
		assert.Equal(t, "bottom", query.Get("pos"))
		assert.Equal(t, "2026-02-02T10:00:00Z", query.Get("due"))
		assert.Equal(t, "l1,l2", query.Get("idLabels"))
		assert.Equal(t, "Review the calendar", query.Get("desc"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "card123", "name": "Plan the week"}`))
	}))

	cardID, err := client.CreateCard(context.Background(), CardRequest{
		ListID:      "list123",
		Name:        "Plan the week",
		Due:         due,
		Description: "Review the calendar",
		LabelIDs:    []string{"l1", "l2"},
	})
	require.NoError(t, err)
	assert.Equal(t, "card123", cardID)
}

func TestClient_CreateCard_MinimalFields(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		assert.False(t, query.Has("due"), "due should be omitted for zero time")
		assert.False(t, query.Has("idLabels"), "idLabels should be omitted when empty")
		assert.False(t, query.Has("desc"), "desc should be omitted when empty")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "card456"}`))
	}))

	cardID, err := client.CreateCard(context.Background(), CardRequest{
		ListID: "list123",
		Name:   "Bare card",
	})
	require.NoError(t, err)
	assert.Equal(t, "card456", cardID)
}

func TestClient_AttachNewLabel(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cards/card123/labels", r.URL.Path)
		assert.Equal(t, "Urgent", r.URL.Query().Get("name"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "label9", "name": "Urgent"}`))
	}))

	labelID, err := client.AttachNewLabel(context.Background(), "card123", "Urgent")
	require.NoError(t, err)
	assert.Equal(t, "label9", labelID)
}

func TestClient_CreateChecklist(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/checklists", r.URL.Path)

		query := r.URL.Query()
		assert.Equal(t, "card123", query.Get("idCard"))
		assert.Equal(t, "Subtasks", query.Get("name"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "checklist123", "name": "Subtasks", "idCard": "card123"}`))
	}))

	checklistID, err := client.CreateChecklist(context.Background(), "card123", "Subtasks")
	require.NoError(t, err)
	assert.Equal(t, "checklist123", checklistID)
}

func TestClient_AddChecklistItem(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/checklists/checklist123/checkItems", r.URL.Path)
		assert.Equal(t, "Step 1", r.URL.Query().Get("name"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "item123", "name": "Step 1"}`))
	}))

	itemID, err := client.AddChecklistItem(context.Background(), "checklist123", "Step 1")
	require.NoError(t, err)
	assert.Equal(t, "item123", itemID)
}

func TestClient_APIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("invalid key"))
	}))

	_, err := client.CreateList(context.Background(), "Todo w05", constants.PositionTop)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, http.MethodPost, apiErr.Method)
	assert.Equal(t, "/lists", apiErr.Path)
	assert.Equal(t, "invalid key", apiErr.Body)
	assert.Contains(t, err.Error(), "failed to create list")
	assert.Contains(t, err.Error(), "401")
}

func TestClient_MalformedResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": `))
	}))

	_, err := client.CreateList(context.Background(), "Todo w05", constants.PositionTop)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}

func TestClient_RequestCounter(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))

	assert.Equal(t, int64(0), client.Requests())

	for i := 0; i < 3; i++ {
		_, err := client.BoardLists(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int64(3), client.Requests())
}

func TestClient_TrailingSlashBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/boards/board123/lists", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Options{
		BaseURL: srv.URL + "/",
		Key:     "k",
		Token:   "t",
		BoardID: "board123",
	})

	_, err := client.BoardLists(context.Background())
	require.NoError(t, err)
}

func TestClient_DefaultTimeout(t *testing.T) {
	client := NewClient(Options{BaseURL: "https://api.trello.com/1"})
	assert.Equal(t, DefaultTimeout, client.http.Timeout)

	custom := NewClient(Options{BaseURL: "https://api.trello.com/1", Timeout: 5 * time.Second})
	assert.Equal(t, 5*time.Second, custom.http.Timeout)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Client now points at a dead server

	client := NewClient(Options{BaseURL: srv.URL, Key: "k", Token: "t", BoardID: "b"})

	_, err := client.BoardLists(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport errors are not APIErrors")
}
