package sdk

import (
	"errors"
	"fmt"
)

// ErrNoHits is returned when there is nothing to send.
var ErrNoHits = errors.New("no hits to send")

// DispatchError is returned when the collection endpoint rejects a request.
// Body holds the raw response body.
type DispatchError struct {
	StatusCode  int
	ContentType string
	Body        string
}

func (e *DispatchError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("dispatch failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("dispatch failed with status %d: %s", e.StatusCode, e.Body)
}
