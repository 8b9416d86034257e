package cart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"boltstore/internal/domain"
	"boltstore/internal/snapshot"
)

// Store is the sole source of truth for one shopper's cart. Mutations
// run to completion under a single lock: the transition is applied,
// the new line sequence is written through to the snapshot slot, and
// subscribers are notified, before the mutation returns. Each
// mutation's slot write therefore happens before the next mutation is
// accepted, so rapid successive edits cannot race on the slot.
//
// When the slot write fails the in-memory cart keeps its previous
// state, so memory and durable snapshot never diverge.
type Store struct {
	mu      sync.Mutex
	cart    Cart
	slot    snapshot.Slot
	logger  *log.Logger
	subs    map[int]func(Cart)
	nextSub int
}

// NewStore builds an empty store over the given slot. Call Hydrate
// before first use to load a previously persisted cart.
func NewStore(slot snapshot.Slot, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{
		slot:   slot,
		logger: logger,
		subs:   make(map[int]func(Cart)),
	}
}

// Hydrate loads the persisted snapshot into the store. An absent slot
// yields an empty cart. A corrupt snapshot must never block startup:
// it is logged and recovered as an empty cart.
func (s *Store) Hydrate(ctx context.Context) error {
	data, ok, err := s.slot.Read(ctx)
	if err != nil {
		return fmt.Errorf("read cart snapshot: %w", err)
	}
	if !ok {
		return nil
	}
	lines, err := snapshot.Decode(data)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotCorrupt) {
			s.logger.Printf("cart store: discarding corrupt snapshot: %v", err)
			return nil
		}
		return err
	}
	s.mu.Lock()
	s.cart = New(lines)
	s.mu.Unlock()
	return nil
}

// AddItem inserts a product or increments its quantity.
func (s *Store) AddItem(ctx context.Context, productID, title string, unitPrice float64, imageRef string) error {
	return s.dispatch(ctx, AddItem{ProductID: productID, Title: title, UnitPrice: unitPrice, ImageRef: imageRef})
}

// RemoveItem deletes a line; absent lines are a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	return s.dispatch(ctx, RemoveItem{ProductID: productID})
}

// SetItemCount sets a line's quantity; a count below one removes the
// line.
func (s *Store) SetItemCount(ctx context.Context, productID string, count int) error {
	return s.dispatch(ctx, SetCount{ProductID: productID, Count: count})
}

// ClearCart empties the cart and erases the persisted slot, rather
// than writing an empty sequence.
func (s *Store) ClearCart(ctx context.Context) error {
	return s.dispatch(ctx, Clear{})
}

// ClearSubmitted subtracts exactly the given snapshot's quantities
// from the cart. A line mutated after the snapshot was taken keeps its
// surplus, so an add that raced a checkout is not lost. When nothing
// survives the subtraction the slot is erased, as ClearCart would.
func (s *Store) ClearSubmitted(ctx context.Context, submitted Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cart
	for _, line := range submitted.Lines() {
		current, ok := next.Get(line.ProductID)
		if !ok {
			continue
		}
		if remaining := current.Quantity - line.Quantity; remaining >= 1 {
			current.Quantity = remaining
			next = next.replace(current)
		} else {
			next = next.remove(line.ProductID)
		}
	}
	return s.commit(ctx, next, next.Len() == 0)
}

func (s *Store) dispatch(ctx context.Context, cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Apply(s.cart, cmd)
	_, isClear := cmd.(Clear)
	return s.commit(ctx, next, isClear)
}

// commit persists the new cart state and notifies subscribers. Must be
// called with the store lock held.
func (s *Store) commit(ctx context.Context, next Cart, erase bool) error {
	if erase {
		if err := s.slot.Erase(ctx); err != nil {
			return fmt.Errorf("erase cart snapshot: %w", err)
		}
	} else {
		data, err := snapshot.Encode(next.Lines())
		if err != nil {
			return fmt.Errorf("encode cart snapshot: %w", err)
		}
		if err := s.slot.Write(ctx, data); err != nil {
			return fmt.Errorf("write cart snapshot: %w", err)
		}
	}

	s.cart = next
	// Subscribers run on the mutating goroutine, still under the store
	// lock, so every observer sees the new state before the mutation
	// returns. Callbacks must not call back into the store.
	for _, fn := range s.subs {
		fn(next)
	}
	return nil
}

// Subscribe registers an observer invoked with the new cart after
// every mutation. The returned function removes the registration.
func (s *Store) Subscribe(fn func(Cart)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Snapshot returns the current cart value.
func (s *Store) Snapshot() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// Lines returns the current line sequence in insertion order.
func (s *Store) Lines() []domain.CartLine {
	return s.Snapshot().Lines()
}

// TotalItemCount is the sum of all line quantities.
func (s *Store) TotalItemCount() int {
	return s.Snapshot().TotalItemCount()
}

// TotalPrice is the sum of unit price times quantity over all lines.
func (s *Store) TotalPrice() float64 {
	return s.Snapshot().TotalPrice()
}
