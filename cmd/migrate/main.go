package main

import (
	"context"
	"log"
	"os"

	"boltstore/internal/config"
	"boltstore/internal/db"
	"boltstore/internal/migrate"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC)

	ctx := context.Background()
	pool, err := db.Connect(ctx, db.Config{DSN: cfg.DBConnString, MaxConns: int32(cfg.DBMaxConns)})
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}
	version, dirty, err := migrate.Status(ctx, pool)
	if err != nil {
		logger.Fatalf("read schema status: %v", err)
	}
	if dirty {
		logger.Fatalf("schema version %d is dirty, manual repair needed", version)
	}
	logger.Printf("migrations applied, schema at version %d", version)
}
