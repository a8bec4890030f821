// Package common defines shared constants and sentinel errors used across
// the client layers of bizcards. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrEmptyToken rejects a blank credential.
	ErrEmptyToken = errors.New("empty token")
)
