package customer

import (
	"context"
	"errors"
	"io"
	"log"

	"boltstore/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrEmailTaken indicates a signup attempt with an already registered
// email address.
var ErrEmailTaken = errors.New("email already registered")

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (email, password_hash, first_name, last_name)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
ON CONFLICT (email) DO NOTHING
RETURNING id::text, created_at
`
	c := domain.Customer{
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	}
	err := r.pool.QueryRow(ctx, q, in.Email, in.PasswordHash, in.FirstName, in.LastName).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmailTaken
		}
		r.logger.Printf("customer repo: create email=%s error=%v", in.Email, err)
		return nil, err
	}
	r.logger.Printf("customer repo: created id=%s email=%s", c.ID, c.Email)
	return &c, nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	const q = `
SELECT id::text, email, password_hash, COALESCE(first_name, ''), COALESCE(last_name, ''), created_at
FROM customers
WHERE email = $1
`
	return r.fetch(ctx, q, email)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const q = `
SELECT id::text, email, password_hash, COALESCE(first_name, ''), COALESCE(last_name, ''), created_at
FROM customers
WHERE id = $1
`
	return r.fetch(ctx, q, id)
}

func (r *postgresRepo) UpdateName(ctx context.Context, id, firstName, lastName string) (*domain.Customer, error) {
	const q = `
UPDATE customers
SET first_name = NULLIF($2, ''), last_name = NULLIF($3, '')
WHERE id = $1
RETURNING id::text, email, password_hash, COALESCE(first_name, ''), COALESCE(last_name, ''), created_at
`
	var c domain.Customer
	err := r.pool.QueryRow(ctx, q, id, firstName, lastName).Scan(&c.ID, &c.Email, &c.PasswordHash, &c.FirstName, &c.LastName, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("customer repo: update name id=%s error=%v", id, err)
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	const q = `
DELETE FROM customers
WHERE id = $1
`
	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		r.logger.Printf("customer repo: delete id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("customer repo: deleted id=%s", id)
	return nil
}

func (r *postgresRepo) fetch(ctx context.Context, q string, arg string) (*domain.Customer, error) {
	var c domain.Customer
	err := r.pool.QueryRow(ctx, q, arg).Scan(&c.ID, &c.Email, &c.PasswordHash, &c.FirstName, &c.LastName, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("customer repo: fetch error=%v", err)
		return nil, err
	}
	return &c, nil
}
