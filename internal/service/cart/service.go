// Package cart manages one hydrated cart store per shopper key. A
// shopper key identifies a client instance (the cart cookie), not
// necessarily a signed-in customer: shoppers fill carts before they
// authenticate.
package cart

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	cartstore "boltstore/internal/cart"
	"boltstore/internal/snapshot"
)

// Service hands out cart stores, hydrating each shopper's store from
// its snapshot slot exactly once per process.
type Service struct {
	slots  snapshot.Slots
	logger *log.Logger

	mu     sync.Mutex
	stores map[string]*cartstore.Store
}

func New(slots snapshot.Slots, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		slots:  slots,
		logger: logger,
		stores: make(map[string]*cartstore.Store),
	}
}

// StoreFor returns the cart store for a shopper key, hydrating it on
// first access. Slot read failures are returned; a corrupt snapshot is
// swallowed inside Hydrate and yields an empty cart.
func (s *Service) StoreFor(ctx context.Context, shopperKey string) (*cartstore.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if store, ok := s.stores[shopperKey]; ok {
		return store, nil
	}
	store := cartstore.NewStore(s.slots.For(shopperKey), s.logger)
	if err := store.Hydrate(ctx); err != nil {
		return nil, fmt.Errorf("hydrate cart %s: %w", shopperKey, err)
	}
	s.stores[shopperKey] = store
	return store, nil
}
