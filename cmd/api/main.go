package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"boltstore/internal/config"
	"boltstore/internal/db"
	"boltstore/internal/httpserver"
	custrepo "boltstore/internal/repository/customer"
	orderrepo "boltstore/internal/repository/order"
	productrepo "boltstore/internal/repository/product"
	"boltstore/internal/snapshot"
	authsvc "boltstore/internal/service/auth"
	cartsvc "boltstore/internal/service/cart"
	catalogsvc "boltstore/internal/service/catalog"
	checkoutsvc "boltstore/internal/service/checkout"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, db.Config{
		DSN:             cfg.DBConnString,
		MaxConns:        int32(cfg.DBMaxConns),
		MaxConnIdleTime: cfg.DBConnIdleTime,
		MaxConnLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	var slots snapshot.Slots
	switch cfg.SnapshotBackend {
	case "redis":
		slots = snapshot.NewRedis(redisClient, 0)
	case "memory":
		slots = snapshot.NewMemory()
	default:
		slots = snapshot.NewPostgres(dbpool, logger)
	}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	customerRepo := custrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	sessions := authsvc.NewRedisSessions(redisClient, cfg.SessionTTL)
	authService := authsvc.New(customerRepo, sessions, logger)
	catalogService := catalogsvc.New(catalogsvc.RepoSource{Repo: productRepo}, cfg.CatalogCacheTTL, logger)
	cartService := cartsvc.New(slots, logger)
	checkoutService := checkoutsvc.New(cartService, orderRepo, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		AuthSvc:     authService,
		CatalogSvc:  catalogService,
		CartSvc:     cartService,
		CheckoutSvc: checkoutService,
		Products:    productRepo,
	}, cfg.CORSAllowOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
