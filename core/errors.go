package core

import "errors"

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrMissingDate     = errors.New("date is required")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidForecast = errors.New("invalid forecast")
)
