// Package checkout converts a cart into a persisted order. The single
// transition, SubmitOrder, fails fast on its preconditions, snapshots
// the cart once up front, and removes the submitted lines only after
// the order store confirms the write.
package checkout

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"

	cartstore "boltstore/internal/cart"
	"boltstore/internal/domain"
	orderrepo "boltstore/internal/repository/order"
)

type cartStores interface {
	StoreFor(ctx context.Context, shopperKey string) (*cartstore.Store, error)
}

// Service coordinates checkout and serves the resulting order history.
type Service struct {
	carts  cartStores
	orders orderrepo.Repository
	logger *log.Logger
}

func New(carts cartStores, orders orderrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{carts: carts, orders: orders, logger: logger}
}

// SubmitOrder places an order for the signed-in customer from the
// shopper's current cart.
//
// Precondition failures (no customer, empty cart) are detected before
// any order-store call. A store failure leaves the cart untouched and
// surfaces as domain.ErrSubmissionFailed; the caller may retry. There
// is no idempotency key: a repeated user-triggered submission before
// the first completes can place a duplicate order.
func (s *Service) SubmitOrder(ctx context.Context, customerID, shopperKey string) (*domain.Order, error) {
	if customerID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	store, err := s.carts.StoreFor(ctx, shopperKey)
	if err != nil {
		return nil, err
	}

	// Single atomic read of the cart; nothing touches the cart again
	// until the order store confirms.
	snap := store.Snapshot()
	if snap.Len() == 0 {
		return nil, domain.ErrEmptyCart
	}

	lines := make([]domain.OrderLine, 0, snap.Len())
	for _, line := range snap.Lines() {
		lines = append(lines, orderLineFrom(line))
	}

	placed, err := s.orders.Append(ctx, orderrepo.AppendInput{
		OwnerID:    customerID,
		Lines:      lines,
		TotalPrice: saneTotal(snap.TotalPrice()),
	})
	if err != nil {
		s.logger.Printf("checkout: submit customer_id=%s error=%v", customerID, err)
		// Transport detail is not part of this contract; callers only
		// learn that submission failed and the cart is unchanged.
		return nil, fmt.Errorf("%w: %v", domain.ErrSubmissionFailed, err)
	}

	// Only the submitted quantities are removed; a line added while the
	// order store was confirming stays in the cart for the next order.
	if err := store.ClearSubmitted(ctx, snap); err != nil {
		// The order exists; a stale snapshot is the lesser failure and
		// gets rewritten by the next cart mutation.
		s.logger.Printf("checkout: clear cart after order %s: %v", placed.ID, err)
	}

	s.logger.Printf("checkout: placed order_id=%s customer_id=%s lines=%d", placed.ID, customerID, len(lines))
	return placed, nil
}

// ListOrders returns the customer's order history, newest first.
func (s *Service) ListOrders(ctx context.Context, customerID string) ([]domain.Order, error) {
	if customerID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return s.orders.ListByOwner(ctx, customerID)
}

// GetOrder returns one of the customer's orders. Orders owned by other
// customers are indistinguishable from absent ones.
func (s *Service) GetOrder(ctx context.Context, customerID, orderID string) (*domain.Order, error) {
	if customerID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.OwnerID != customerID {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// orderLineFrom takes a defensive copy of a cart line, defaulting
// fields that older persisted cart formats may have left unset.
func orderLineFrom(line domain.CartLine) domain.OrderLine {
	out := domain.OrderLine{
		ProductID: line.ProductID,
		Title:     line.Title,
		UnitPrice: line.UnitPrice,
		ImageRef:  line.ImageRef,
		Quantity:  line.Quantity,
	}
	if out.ProductID == "" {
		out.ProductID = "unknown"
	}
	if out.Title == "" {
		out.Title = "Untitled Product"
	}
	if math.IsNaN(out.UnitPrice) || math.IsInf(out.UnitPrice, 0) || out.UnitPrice < 0 {
		out.UnitPrice = 0
	}
	if out.Quantity < 1 {
		out.Quantity = 1
	}
	return out
}

func saneTotal(total float64) float64 {
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0
	}
	return total
}
