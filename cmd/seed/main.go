package main

import (
	"context"
	"log"
	"os"

	"boltstore/internal/config"
	"boltstore/internal/db"
	productrepo "boltstore/internal/repository/product"
	"boltstore/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC)

	ctx := context.Background()
	pool, err := db.Connect(ctx, db.Config{DSN: cfg.DBConnString, MaxConns: int32(cfg.DBMaxConns)})
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	repo := productrepo.NewPostgres(pool, logger)
	count, err := seed.Run(ctx, repo)
	if err != nil {
		logger.Fatalf("seed: %v", err)
	}
	logger.Printf("seeded %d products", count)
}
