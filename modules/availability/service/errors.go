package service

import "errors"

var (
	ErrInvalidRange      = errors.New("end time must be after start time")
	ErrOverlap           = errors.New("window overlaps an existing window")
	ErrMalformedRecord   = errors.New("malformed availability record")
	ErrEmptySelection    = errors.New("no dates selected")
	ErrInvalidDateRange  = errors.New("end date must not be before start date")
	ErrDateNotSelectable = errors.New("date is outside the event range")
	ErrDateNotSelected   = errors.New("date is not selected")
)
