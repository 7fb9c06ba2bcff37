package cycle

import "errors"

var (
	// ErrInvalidRange is returned when an end date precedes its start date
	// or a duration is shorter than one day.
	ErrInvalidRange = errors.New("cycle: invalid period date range")

	// ErrNotFound is returned when no record matches the given start date.
	ErrNotFound = errors.New("cycle: no record with that start date")
)
