package product

import (
	"context"
	"errors"
	"io"
	"log"

	"boltstore/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

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

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT id::text, title, COALESCE(description, ''), category, price, image_ref, rating_rate, rating_count, created_at
FROM products
ORDER BY created_at ASC, id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Price, &p.ImageRef, &p.RatingRate, &p.RatingCount, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT id::text, title, COALESCE(description, ''), category, price, image_ref, rating_rate, rating_count, created_at
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Price, &p.ImageRef, &p.RatingRate, &p.RatingCount, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) ListCategories(ctx context.Context) ([]string, error) {
	const q = `
SELECT DISTINCT category
FROM products
WHERE category <> ''
ORDER BY category ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list categories error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, title, description, category, price, image_ref, rating_rate, rating_count)
VALUES (COALESCE(NULLIF($1, ''), gen_random_uuid()::text), $2, NULLIF($3, ''), $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    price = EXCLUDED.price,
    image_ref = EXCLUDED.image_ref,
    rating_rate = EXCLUDED.rating_rate,
    rating_count = EXCLUDED.rating_count
RETURNING id::text, created_at
`
	res := product
	err := r.pool.QueryRow(ctx, q,
		product.ID,
		product.Title,
		product.Description,
		product.Category,
		product.Price,
		product.ImageRef,
		product.RatingRate,
		product.RatingCount,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert id=%s title=%q error=%v", product.ID, product.Title, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted id=%s title=%q", res.ID, res.Title)
	return &res, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	const q = `
DELETE FROM products
WHERE id = $1
`
	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("product repo: deleted id=%s", id)
	return nil
}
