package models

import (
	"errors"
	"fmt"
)

// Domain specific errors for the planner and chat flows.
var (
	ErrNotConfigured      = errors.New("generative AI API key is not configured")
	ErrMalformedResponse  = errors.New("malformed response")
	ErrValidation         = errors.New("validation failed")
	ErrNoItinerary        = errors.New("no itinerary is currently available")
	ErrGenerationInFlight = errors.New("an itinerary generation is already in flight")
)

// RemoteError is a non-success answer from the completion endpoint. Message is
// the nested error message from the response body when present, otherwise a
// generic fallback.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}
