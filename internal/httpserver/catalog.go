package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func listProductsHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.Products(c.Request.Context(), c.Query("category"))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func listCategoriesHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.Categories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}
