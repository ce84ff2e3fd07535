// Package domain defines domain-level errors for the portfolio feature.
package domain

import "errors"

var (
	// ErrHoldingNotFound indicates that no holding matches the given id for the user.
	// Lookups are always scoped by user, so another user's holding is "not found".
	ErrHoldingNotFound = errors.New("holding not found for user")

	// ErrDuplicateHolding indicates a uniqueness violation on (user, symbol).
	// The usecase merges instead of duplicating, so this only surfaces on a
	// concurrent create race.
	ErrDuplicateHolding = errors.New("holding already exists for user and symbol")
)
