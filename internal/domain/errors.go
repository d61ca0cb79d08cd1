package domain

import "errors"

var (
	// ErrMalformedSnapshot marks inbound payloads that fail shape validation.
	ErrMalformedSnapshot = errors.New("malformed snapshot")

	// ErrTimerNotFound is returned when a mutation names an unknown timer id.
	ErrTimerNotFound = errors.New("timer not found")
)
