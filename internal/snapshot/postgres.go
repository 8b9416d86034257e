package snapshot

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresSlots struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns slots backed by the cart_snapshots table.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Slots {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresSlots{pool: pool, logger: logger}
}

func (s *postgresSlots) For(ownerKey string) Slot {
	return &postgresSlot{slots: s, key: ownerKey}
}

type postgresSlot struct {
	slots *postgresSlots
	key   string
}

func (s *postgresSlot) Read(ctx context.Context) ([]byte, bool, error) {
	const q = `
SELECT payload
FROM cart_snapshots
WHERE owner_key = $1
`
	var payload []byte
	err := s.slots.pool.QueryRow(ctx, q, s.key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		s.slots.logger.Printf("snapshot repo: read owner_key=%s error=%v", s.key, err)
		return nil, false, err
	}
	return payload, true, nil
}

func (s *postgresSlot) Write(ctx context.Context, data []byte) error {
	const q = `
INSERT INTO cart_snapshots (owner_key, payload)
VALUES ($1, $2)
ON CONFLICT (owner_key) DO UPDATE SET
    payload = EXCLUDED.payload,
    updated_at = now()
`
	if _, err := s.slots.pool.Exec(ctx, q, s.key, data); err != nil {
		s.slots.logger.Printf("snapshot repo: write owner_key=%s error=%v", s.key, err)
		return err
	}
	return nil
}

func (s *postgresSlot) Erase(ctx context.Context) error {
	const q = `
DELETE FROM cart_snapshots
WHERE owner_key = $1
`
	if _, err := s.slots.pool.Exec(ctx, q, s.key); err != nil {
		s.slots.logger.Printf("snapshot repo: erase owner_key=%s error=%v", s.key, err)
		return err
	}
	return nil
}
