package checkout

import (
	"context"
	"errors"
	"math"
	"testing"

	cartstore "boltstore/internal/cart"
	"boltstore/internal/domain"
	orderrepo "boltstore/internal/repository/order"
	cartsvc "boltstore/internal/service/cart"
	"boltstore/internal/snapshot"
)

type stubOrders struct {
	orders  []orderrepo.AppendInput
	failErr error
}

func (s *stubOrders) Append(_ context.Context, in orderrepo.AppendInput) (*domain.Order, error) {
	if s.failErr != nil {
		return nil, s.failErr
	}
	s.orders = append(s.orders, in)
	return &domain.Order{
		ID:         "order-1",
		OwnerID:    in.OwnerID,
		Lines:      in.Lines,
		TotalPrice: in.TotalPrice,
		Status:     domain.OrderStatusPlaced,
	}, nil
}

func (s *stubOrders) GetByID(context.Context, string) (*domain.Order, error) {
	return nil, domain.ErrNotFound
}

func (s *stubOrders) ListByOwner(context.Context, string) ([]domain.Order, error) {
	return nil, nil
}

func newCartService() *cartsvc.Service {
	return cartsvc.New(snapshot.NewMemory(), nil)
}

func TestSubmitOrderRequiresCustomer(t *testing.T) {
	svc := New(newCartService(), &stubOrders{}, nil)
	if _, err := svc.SubmitOrder(context.Background(), "", "shopper-1"); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestSubmitOrderRequiresNonEmptyCart(t *testing.T) {
	svc := New(newCartService(), &stubOrders{}, nil)
	if _, err := svc.SubmitOrder(context.Background(), "cust-1", "shopper-1"); !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestSubmitOrderHappyPath(t *testing.T) {
	ctx := context.Background()
	carts := newCartService()
	orders := &stubOrders{}
	svc := New(carts, orders, nil)

	store, err := carts.StoreFor(ctx, "shopper-1")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := store.AddItem(ctx, "p1", "Bolt Tee", 19.99, "tee.png"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.AddItem(ctx, "p1", "Bolt Tee", 19.99, "tee.png"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.AddItem(ctx, "p2", "Storm Mug", 8.50, "mug.png"); err != nil {
		t.Fatalf("add: %v", err)
	}

	placed, err := svc.SubmitOrder(ctx, "cust-1", "shopper-1")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if placed.OwnerID != "cust-1" {
		t.Fatalf("unexpected owner %s", placed.OwnerID)
	}
	if len(orders.orders) != 1 {
		t.Fatalf("expected one append, got %d", len(orders.orders))
	}
	in := orders.orders[0]
	if len(in.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(in.Lines))
	}
	if in.Lines[0].Quantity != 2 || in.Lines[1].Quantity != 1 {
		t.Fatalf("unexpected quantities %+v", in.Lines)
	}
	if math.Abs(in.TotalPrice-48.48) > 1e-9 {
		t.Fatalf("expected total 48.48, got %v", in.TotalPrice)
	}

	// The cart is cleared only after the store confirms.
	if store.TotalItemCount() != 0 {
		t.Fatalf("expected cart cleared, got %d items", store.TotalItemCount())
	}
}

func TestSubmitOrderStoreFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	carts := newCartService()
	orders := &stubOrders{failErr: errors.New("connection refused")}
	svc := New(carts, orders, nil)

	store, err := carts.StoreFor(ctx, "shopper-1")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := store.AddItem(ctx, "p1", "Bolt Tee", 19.99, ""); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := svc.SubmitOrder(ctx, "cust-1", "shopper-1"); !errors.Is(err, domain.ErrSubmissionFailed) {
		t.Fatalf("expected ErrSubmissionFailed, got %v", err)
	}
	if store.TotalItemCount() != 1 {
		t.Fatalf("expected cart untouched, got %d items", store.TotalItemCount())
	}

	// A retry after the store recovers sees the same cart.
	orders.failErr = nil
	if _, err := svc.SubmitOrder(ctx, "cust-1", "shopper-1"); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got := orders.orders[0].Lines[0].ProductID; got != "p1" {
		t.Fatalf("unexpected retried line %s", got)
	}
	if store.TotalItemCount() != 0 {
		t.Fatalf("expected cart cleared after retry, got %d items", store.TotalItemCount())
	}
}

// interleavingOrders appends a cart line while the order store is
// confirming, simulating a shopper who keeps adding during checkout.
type interleavingOrders struct {
	stubOrders
	store  *cartstore.Store
	midAdd func(store *cartstore.Store)
}

func (s *interleavingOrders) Append(ctx context.Context, in orderrepo.AppendInput) (*domain.Order, error) {
	s.midAdd(s.store)
	return s.stubOrders.Append(ctx, in)
}

func TestSubmitOrderKeepsLinesAddedDuringSubmission(t *testing.T) {
	ctx := context.Background()
	carts := newCartService()

	store, err := carts.StoreFor(ctx, "shopper-1")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := store.AddItem(ctx, "p1", "Bolt Tee", 19.99, ""); err != nil {
		t.Fatalf("add: %v", err)
	}

	orders := &interleavingOrders{
		store: store,
		midAdd: func(store *cartstore.Store) {
			if err := store.AddItem(ctx, "p-late", "Storm Mug", 8.50, ""); err != nil {
				t.Fatalf("mid-flight add: %v", err)
			}
		},
	}
	svc := New(carts, orders, nil)

	if _, err := svc.SubmitOrder(ctx, "cust-1", "shopper-1"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// The order holds only the snapshotted line.
	if len(orders.orders) != 1 || len(orders.orders[0].Lines) != 1 || orders.orders[0].Lines[0].ProductID != "p1" {
		t.Fatalf("unexpected submitted lines %+v", orders.orders)
	}

	// The mid-flight add survives for the next order.
	late, ok := store.Snapshot().Get("p-late")
	if !ok || late.Quantity != 1 {
		t.Fatalf("line added while submission was in flight must survive the clear, got %+v ok=%v", late, ok)
	}
	if _, ok := store.Snapshot().Get("p1"); ok {
		t.Fatalf("submitted line should be removed from the cart")
	}
}

func TestOrderLineDefaults(t *testing.T) {
	got := orderLineFrom(domain.CartLine{UnitPrice: math.NaN(), Quantity: 0})
	if got.ProductID != "unknown" {
		t.Fatalf("expected unknown product id, got %q", got.ProductID)
	}
	if got.Title != "Untitled Product" {
		t.Fatalf("expected default title, got %q", got.Title)
	}
	if got.UnitPrice != 0 {
		t.Fatalf("expected zero price, got %v", got.UnitPrice)
	}
	if got.Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", got.Quantity)
	}
}

func TestGetOrderHidesForeignOrders(t *testing.T) {
	ctx := context.Background()
	repo := orderrepo.NewMemory()
	placed, err := repo.Append(ctx, orderrepo.AppendInput{OwnerID: "cust-1"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	svc := New(newCartService(), repo, nil)
	if _, err := svc.GetOrder(ctx, "cust-2", placed.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign order, got %v", err)
	}
	if _, err := svc.GetOrder(ctx, "cust-1", placed.ID); err != nil {
		t.Fatalf("owner lookup: %v", err)
	}
}

func TestListOrdersRequiresCustomer(t *testing.T) {
	svc := New(newCartService(), &stubOrders{}, nil)
	if _, err := svc.ListOrders(context.Background(), ""); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}
