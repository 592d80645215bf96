// Package constants provides shared constants for the trello-weekly application
package constants

// UserAgent identifies this application on every Trello API request
const UserAgent = "trello-weekly"
