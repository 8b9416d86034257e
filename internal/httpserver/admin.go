package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"boltstore/internal/domain"
)

// productRequest is the write payload for catalog administration.
type productRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	ImageRef    string  `json:"image"`
	RatingRate  float64 `json:"ratingRate"`
	RatingCount int     `json:"ratingCount"`
}

func (r productRequest) toProduct(id string) domain.Product {
	return domain.Product{
		ID:          id,
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Category:    strings.TrimSpace(r.Category),
		Price:       r.Price,
		ImageRef:    strings.TrimSpace(r.ImageRef),
		RatingRate:  r.RatingRate,
		RatingCount: r.RatingCount,
	}
}

func getProductHandler(products ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := products.GetByID(c.Request.Context(), c.Param("productId"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "product lookup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": p})
	}
}

func createProductHandler(authSvc AuthService, products ProductStore, invalidate func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireCustomer(c, authSvc); !ok {
			return
		}
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
			return
		}
		created, err := products.Upsert(c.Request.Context(), req.toProduct(""))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "product write failed"})
			return
		}
		invalidate()
		c.JSON(http.StatusCreated, gin.H{"product": created})
	}
}

func updateProductHandler(authSvc AuthService, products ProductStore, invalidate func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireCustomer(c, authSvc); !ok {
			return
		}
		id := c.Param("productId")
		if _, err := products.GetByID(c.Request.Context(), id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "product lookup failed"})
			return
		}
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
			return
		}
		updated, err := products.Upsert(c.Request.Context(), req.toProduct(id))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "product write failed"})
			return
		}
		invalidate()
		c.JSON(http.StatusOK, gin.H{"product": updated})
	}
}

func deleteProductHandler(authSvc AuthService, products ProductStore, invalidate func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireCustomer(c, authSvc); !ok {
			return
		}
		err := products.Delete(c.Request.Context(), c.Param("productId"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "product delete failed"})
			return
		}
		invalidate()
		c.Status(http.StatusNoContent)
	}
}
