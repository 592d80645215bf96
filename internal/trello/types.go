package trello

import "time"

// List is a named column on a board
type List struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	BoardID string `json:"idBoard"`
	Closed  bool   `json:"closed"`
}

// Label is a named color tag defined on a board
type Label struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	BoardID string `json:"idBoard"`
}

// Card is an item within a list
type Card struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Desc     string   `json:"desc"`
	ListID   string   `json:"idList"`
	BoardID  string   `json:"idBoard"`
	Due      string   `json:"due"`
	LabelIDs []string `json:"idLabels"`
}

// Checklist is an ordered set of checkable items attached to a card
type Checklist struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	CardID string `json:"idCard"`
}

// CheckItem is a single entry in a checklist
type CheckItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CardRequest describes a card to create
type CardRequest struct {
	ListID      string
	Name        string
	Due         time.Time
	Description string
	LabelIDs    []string
}
