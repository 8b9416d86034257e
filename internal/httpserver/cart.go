package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	cartstore "boltstore/internal/cart"
	"boltstore/internal/domain"
)

type addItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unitPrice"`
	ImageRef  string  `json:"imageRef"`
}

// setCountRequest takes count as whatever JSON value the client sent.
// A non-numeric count expresses intent to remove the line, so the wire
// layer normalizes it to zero instead of rejecting the request.
type setCountRequest struct {
	Count any `json:"count"`
}

func (r setCountRequest) normalizedCount() int {
	switch v := r.Count.(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

type cartResponse struct {
	Items      []domain.CartLine `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice float64           `json:"totalPrice"`
}

func toCartResponse(c cartstore.Cart) cartResponse {
	return cartResponse{
		Items:      c.Lines(),
		TotalItems: c.TotalItemCount(),
		TotalPrice: c.TotalPrice(),
	}
}

func cartFor(c *gin.Context, svc CartService) (*cartstore.Store, bool) {
	store, err := svc.StoreFor(c.Request.Context(), shopperKey(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart unavailable"})
		return nil, false
	}
	return store, true
}

func getCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := cartFor(c, svc)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, toCartResponse(store.Snapshot()))
	}
}

func addItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		store, ok := cartFor(c, svc)
		if !ok {
			return
		}
		if err := store.AddItem(c.Request.Context(), req.ProductID, req.Title, req.UnitPrice, req.ImageRef); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart update failed"})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(store.Snapshot()))
	}
}

func setItemCountHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setCountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		store, ok := cartFor(c, svc)
		if !ok {
			return
		}
		if err := store.SetItemCount(c.Request.Context(), c.Param("productId"), req.normalizedCount()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart update failed"})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(store.Snapshot()))
	}
}

func removeItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := cartFor(c, svc)
		if !ok {
			return
		}
		if err := store.RemoveItem(c.Request.Context(), c.Param("productId")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart update failed"})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(store.Snapshot()))
	}
}

func clearCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := cartFor(c, svc)
		if !ok {
			return
		}
		if err := store.ClearCart(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart update failed"})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(store.Snapshot()))
	}
}
