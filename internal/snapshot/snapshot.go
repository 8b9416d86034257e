// Package snapshot persists cart line sequences to a durable,
// string-keyed slot so a shopper's cart survives process restarts.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"boltstore/internal/domain"
)

// Slot is a single durable value bound to one shopper's cart. "No
// cart" and "empty cart" are distinguishable only by slot presence:
// clearing a cart erases the slot, while an empty-but-uncleared cart
// holds an empty line sequence.
type Slot interface {
	// Read returns the stored payload and whether the slot exists.
	Read(ctx context.Context) ([]byte, bool, error)
	// Write replaces the whole payload. Carts are small; replacing the
	// full snapshot on every mutation beats incremental patching.
	Write(ctx context.Context, data []byte) error
	// Erase deletes the slot entirely.
	Erase(ctx context.Context) error
}

// Slots hands out the slot for a given shopper key.
type Slots interface {
	For(ownerKey string) Slot
}

// Encode serializes a line sequence for slot storage. An empty
// sequence encodes as an empty list, never null, so that readers can
// tell it apart from an absent slot.
func Encode(lines []domain.CartLine) ([]byte, error) {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return json.Marshal(lines)
}

// Decode parses a stored payload back into a line sequence. An
// unparsable payload is reported as domain.ErrSnapshotCorrupt; callers
// recover by starting from an empty cart.
func Decode(data []byte) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSnapshotCorrupt, err)
	}
	return lines, nil
}
