package weather

import (
	"errors"
)

var (
	// ErrUnauthorized is returned when the token is missing or not valid
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when revoking a token the service does not know
	ErrNotFound = errors.New("not found")

	// ErrBadRequest is returned when the service rejects the request parameters
	ErrBadRequest = errors.New("bad request")

	// ErrRateLimited is returned when too many tokens were requested
	ErrRateLimited = errors.New("rate limited")

	// ErrUnexpectedStatus is returned for any other non 2xx response
	ErrUnexpectedStatus = errors.New("unexpected status")
)
