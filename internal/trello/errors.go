package trello

import "fmt"

// APIError is a non-2xx response from the Trello API
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

// Error returns the string representation of the API error
func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("trello API %s %s returned %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("trello API %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}
