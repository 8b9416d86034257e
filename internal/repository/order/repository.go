package order

import (
	"context"

	"boltstore/internal/domain"
)

// AppendInput carries everything the store needs to persist a placed
// order. The repository assigns the id and the creation timestamp;
// client-supplied times are never trusted.
type AppendInput struct {
	OwnerID    string
	Lines      []domain.OrderLine
	TotalPrice float64
}

// Repository is an append-only order store: orders are written once at
// checkout and immutable afterwards.
type Repository interface {
	Append(ctx context.Context, in AppendInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Order, error)
}
