package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"boltstore/internal/config"
	"boltstore/internal/db"
	"boltstore/internal/importer"
	productrepo "boltstore/internal/repository/product"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC)

	apiURL := flag.String("api", cfg.CatalogAPIURL, "base URL of the remote catalog API")
	timeout := flag.Duration("timeout", 30*time.Second, "import timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := db.Connect(ctx, db.Config{DSN: cfg.DBConnString, MaxConns: int32(cfg.DBMaxConns)})
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	repo := productrepo.NewPostgres(pool, logger)
	imp := importer.NewAPIImporter(*apiURL, &http.Client{Timeout: *timeout}, repo)

	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import: %v (imported %d before failure)", err, count)
	}
	logger.Printf("imported %d products from %s", count, *apiURL)
}
