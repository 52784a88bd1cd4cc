package controller

import "errors"

// Sentinel errors for Controller Façade operations.
var (
	// ErrSourceAlreadyKnown indicates DiscoverSource was called for a
	// (group, source) pair already tracked — an idempotent no-op.
	ErrSourceAlreadyKnown = errors.New("controller: source already known")

	// ErrGroupNotFound indicates a membership change event referenced a
	// group with no known source yet.
	ErrGroupNotFound = errors.New("controller: group not found")
)
