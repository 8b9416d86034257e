package order

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

func (r *postgresRepo) Append(ctx context.Context, in AppendInput) (*domain.Order, error) {
	if in.OwnerID == "" {
		return nil, errors.New("owner id required")
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	o := domain.Order{
		OwnerID:    in.OwnerID,
		TotalPrice: in.TotalPrice,
		Status:     domain.OrderStatusPlaced,
	}
	const insertOrder = `
INSERT INTO orders (owner_id, total_price, status)
VALUES ($1, $2, 'placed')
RETURNING id::text, created_at
`
	if err := tx.QueryRow(ctx, insertOrder, in.OwnerID, in.TotalPrice).Scan(&o.ID, &o.CreatedAt); err != nil {
		r.logger.Printf("order repo: append owner_id=%s error=%v", in.OwnerID, err)
		return nil, err
	}

	const insertLine = `
INSERT INTO order_lines (order_id, position, product_id, title, unit_price, image_ref, quantity)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	for i, line := range in.Lines {
		if _, err := tx.Exec(ctx, insertLine, o.ID, i, line.ProductID, line.Title, line.UnitPrice, line.ImageRef, line.Quantity); err != nil {
			r.logger.Printf("order repo: append line order_id=%s position=%d error=%v", o.ID, i, err)
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	o.Lines = make([]domain.OrderLine, len(in.Lines))
	copy(o.Lines, in.Lines)
	r.logger.Printf("order repo: appended id=%s owner_id=%s lines=%d", o.ID, o.OwnerID, len(o.Lines))
	return &o, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT id::text, owner_id::text, total_price, status, created_at
FROM orders
WHERE id = $1
`
	var o domain.Order
	err := r.pool.QueryRow(ctx, q, id).Scan(&o.ID, &o.OwnerID, &o.TotalPrice, &o.Status, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}
	lines, err := r.fetchLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

func (r *postgresRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Order, error) {
	const q = `
SELECT id::text, owner_id::text, total_price, status, created_at
FROM orders
WHERE owner_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, ownerID)
	if err != nil {
		r.logger.Printf("order repo: list owner_id=%s error=%v", ownerID, err)
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.OwnerID, &o.TotalPrice, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		lines, err := r.fetchLines(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Lines = lines
	}
	return orders, nil
}

func (r *postgresRepo) fetchLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	const q = `
SELECT product_id, title, unit_price, image_ref, quantity
FROM order_lines
WHERE order_id = $1
ORDER BY position ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		r.logger.Printf("order repo: lines order_id=%s error=%v", orderID, err)
		return nil, err
	}
	defer rows.Close()

	lines := make([]domain.OrderLine, 0)
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.ProductID, &l.Title, &l.UnitPrice, &l.ImageRef, &l.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
