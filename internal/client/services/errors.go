package services

import "errors"

var (
	// ErrLoginRequired is returned before any network I/O when an operation
	// needs a signed-in user.
	ErrLoginRequired = errors.New("login required")
	// ErrBusinessRequired is returned when a non-business account tries to
	// create a card.
	ErrBusinessRequired = errors.New("business account required")
	// ErrTogglePending refuses a like toggle while the previous toggle on the
	// same card is still in flight.
	ErrTogglePending = errors.New("like toggle already in progress")
)
