package httpserver

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cartstore "boltstore/internal/cart"
	"boltstore/internal/domain"
	"boltstore/internal/service/auth"
)

// Deps carries the services the router dispatches to.
type Deps struct {
	AuthSvc     AuthService
	CatalogSvc  CatalogService
	CartSvc     CartService
	CheckoutSvc CheckoutService
	Products    ProductStore
}

type AuthService interface {
	Signup(ctx context.Context, in auth.SignupInput) (*domain.Customer, error)
	Login(ctx context.Context, email, password string) (string, *domain.Customer, error)
	Logout(ctx context.Context, token string) error
	CurrentCustomerID(ctx context.Context, token string) (string, error)
	CurrentCustomer(ctx context.Context, token string) (*domain.Customer, error)
	UpdateProfile(ctx context.Context, token, firstName, lastName string) (*domain.Customer, error)
	DeleteAccount(ctx context.Context, token string) error
}

type CatalogService interface {
	Products(ctx context.Context, selectedCategory string) ([]domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Invalidate()
}

// ProductStore is the write side of the catalog, exposed on the admin
// endpoints.
type ProductStore interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type CartService interface {
	StoreFor(ctx context.Context, shopperKey string) (*cartstore.Store, error)
}

type CheckoutService interface {
	SubmitOrder(ctx context.Context, customerID, shopperKey string) (*domain.Order, error)
	ListOrders(ctx context.Context, customerID string) ([]domain.Order, error)
	GetOrder(ctx context.Context, customerID, orderID string) (*domain.Order, error)
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins string) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(corsMiddleware(corsOrigins))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/signup", signupHandler(deps.AuthSvc))
	router.POST("/login", loginHandler(deps.AuthSvc))
	router.POST("/logout", logoutHandler(deps.AuthSvc))
	router.GET("/me", meHandler(deps.AuthSvc))
	router.PUT("/me", updateMeHandler(deps.AuthSvc))
	router.DELETE("/me", deleteMeHandler(deps.AuthSvc))

	router.GET("/products", listProductsHandler(deps.CatalogSvc))
	router.GET("/products/:productId", getProductHandler(deps.Products))
	router.GET("/categories", listCategoriesHandler(deps.CatalogSvc))

	// Catalog administration. Writes drop the cached listing so the
	// storefront sees them on the next read.
	router.POST("/products", createProductHandler(deps.AuthSvc, deps.Products, deps.CatalogSvc.Invalidate))
	router.PUT("/products/:productId", updateProductHandler(deps.AuthSvc, deps.Products, deps.CatalogSvc.Invalidate))
	router.DELETE("/products/:productId", deleteProductHandler(deps.AuthSvc, deps.Products, deps.CatalogSvc.Invalidate))

	carts := router.Group("/cart", shopperKeyMiddleware())
	carts.GET("", getCartHandler(deps.CartSvc))
	carts.POST("/items", addItemHandler(deps.CartSvc))
	carts.PUT("/items/:productId", setItemCountHandler(deps.CartSvc))
	carts.DELETE("/items/:productId", removeItemHandler(deps.CartSvc))
	carts.DELETE("", clearCartHandler(deps.CartSvc))

	router.POST("/checkout", shopperKeyMiddleware(), submitOrderHandler(deps.AuthSvc, deps.CheckoutSvc))
	router.GET("/orders", listOrdersHandler(deps.AuthSvc, deps.CheckoutSvc))
	router.GET("/orders/:orderId", getOrderHandler(deps.AuthSvc, deps.CheckoutSvc))

	return router, nil
}

func corsMiddleware(origins string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowCredentials = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	if origins == "" || origins == "*" {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = strings.Split(origins, ",")
	}
	return cors.New(cfg)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
