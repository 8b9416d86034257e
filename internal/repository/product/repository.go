package product

import (
	"context"

	"boltstore/internal/domain"
)

type Repository interface {
	ListAll(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
