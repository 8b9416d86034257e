package order

import (
	"context"
	"errors"
	"sync"
	"time"

	"boltstore/internal/domain"
	"github.com/google/uuid"
)

type memoryRepo struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	byTime []string
	lastAt time.Time
}

// NewMemory returns an in-memory order repository, used in tests and
// when the service runs without Postgres.
func NewMemory() Repository {
	return &memoryRepo{orders: make(map[string]domain.Order)}
}

func (r *memoryRepo) Append(ctx context.Context, in AppendInput) (*domain.Order, error) {
	if in.OwnerID == "" {
		return nil, errors.New("owner id required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	// Creation timestamps are monotonically increasing per store even
	// when the wall clock stalls between appends.
	now := time.Now().UTC()
	if !now.After(r.lastAt) {
		now = r.lastAt.Add(time.Nanosecond)
	}
	r.lastAt = now

	lines := make([]domain.OrderLine, len(in.Lines))
	copy(lines, in.Lines)

	o := domain.Order{
		ID:         uuid.NewString(),
		OwnerID:    in.OwnerID,
		Lines:      lines,
		TotalPrice: in.TotalPrice,
		Status:     domain.OrderStatusPlaced,
		CreatedAt:  now,
	}
	r.orders[o.ID] = o
	r.byTime = append(r.byTime, o.ID)
	return &o, nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (r *memoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Order, 0)
	for i := len(r.byTime) - 1; i >= 0; i-- {
		o := r.orders[r.byTime[i]]
		if o.OwnerID == ownerID {
			out = append(out, o)
		}
	}
	return out, nil
}
