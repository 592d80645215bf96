// Package constants provides shared constants for the trello-weekly application
package constants

import "fmt"

// Position represents where a newly created list is placed on the board
type Position string

const (
	// PositionTop places the new list before all existing lists
	PositionTop Position = "top"
	// PositionBottom places the new list after all existing lists
	PositionBottom Position = "bottom"
)

// Trello positioning sentinels accepted by the API "pos" parameter
const (
	apiPosTop    = "top"
	apiPosBottom = "bottom"
)

// IsValid checks if the position value is valid
func (p Position) IsValid() bool {
	return p == PositionTop || p == PositionBottom
}

// String returns the string representation of the position
func (p Position) String() string {
	return string(p)
}

// APIValue returns the sentinel to send as the Trello "pos" parameter
func (p Position) APIValue() string {
	if p == PositionBottom {
		return apiPosBottom
	}
	return apiPosTop
}

// ParsePosition parses a string into a Position type
// Returns an error if the value is invalid
func ParsePosition(s string) (Position, error) {
	pos := Position(s)
	if !pos.IsValid() {
		return "", fmt.Errorf("invalid position: %s (must be 'top' or 'bottom')", s)
	}
	return pos, nil
}

// GetAllPositions returns all valid position values
func GetAllPositions() []Position {
	return []Position{PositionTop, PositionBottom}
}
