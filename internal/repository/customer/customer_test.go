package customer

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"boltstore/internal/domain"
	"boltstore/internal/migrate"
)

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("ping db: %v", err)
	}
	return pool
}

func TestPostgres_CreateAndFetch(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE customers CASCADE`); err != nil {
		t.Fatalf("truncate customers: %v", err)
	}

	repo := NewPostgres(pool, nil)

	created, err := repo.Create(ctx, CreateInput{
		Email:        "shopper@example.com",
		PasswordHash: "hash",
		FirstName:    "Sam",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("expected assigned id and timestamp, got %+v", created)
	}

	if _, err := repo.Create(ctx, CreateInput{Email: "shopper@example.com", PasswordHash: "other"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	byEmail, err := repo.GetByEmail(ctx, "shopper@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail.ID != created.ID || byEmail.FirstName != "Sam" || byEmail.LastName != "" {
		t.Fatalf("unexpected customer %+v", byEmail)
	}

	byID, err := repo.GetByID(ctx, created.ID)
	if err != nil || byID.Email != "shopper@example.com" {
		t.Fatalf("get by id: %+v err=%v", byID, err)
	}

	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPostgres_UpdateNameAndDelete(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE customers CASCADE`); err != nil {
		t.Fatalf("truncate customers: %v", err)
	}

	repo := NewPostgres(pool, nil)
	created, err := repo.Create(ctx, CreateInput{Email: "shopper@example.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.UpdateName(ctx, created.ID, "Sam", "Storm")
	if err != nil {
		t.Fatalf("update name: %v", err)
	}
	if updated.FirstName != "Sam" || updated.LastName != "Storm" {
		t.Fatalf("unexpected customer %+v", updated)
	}

	// Deletion cascades the customer's orders.
	var orderID string
	err = pool.QueryRow(ctx,
		`INSERT INTO orders (owner_id, total_price) VALUES ($1, 10) RETURNING id::text`,
		created.ID,
	).Scan(&orderID)
	if err != nil {
		t.Fatalf("insert order: %v", err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected customer gone, got %v", err)
	}
	var leftover int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM orders WHERE id = $1`, orderID).Scan(&leftover); err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if leftover != 0 {
		t.Fatalf("expected cascaded order deletion, %d rows left", leftover)
	}

	if err := repo.Delete(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on repeat delete, got %v", err)
	}
}
