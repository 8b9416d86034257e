package customer

import (
	"context"

	"boltstore/internal/domain"
)

type CreateInput struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
}

type Repository interface {
	Create(ctx context.Context, in CreateInput) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	UpdateName(ctx context.Context, id, firstName, lastName string) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}
