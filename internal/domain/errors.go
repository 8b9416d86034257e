package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrNotAuthenticated is returned when checkout is attempted with no
	// signed-in shopper. Recoverable by signing in.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrEmptyCart is returned when checkout is attempted on a cart with
	// zero lines. Recoverable by adding items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrSubmissionFailed wraps any order-store failure during checkout.
	// The cart is guaranteed unchanged when this is returned.
	ErrSubmissionFailed = errors.New("order submission failed")
	// ErrSnapshotCorrupt marks an unparsable persisted cart snapshot. It
	// is logged and recovered as an empty cart, never surfaced.
	ErrSnapshotCorrupt = errors.New("cart snapshot corrupt")
)
