package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"boltstore/internal/domain"
)

func submitOrderHandler(authSvc AuthService, svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, err := currentCustomerID(c, authSvc)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
			return
		}
		order, err := svc.SubmitOrder(c.Request.Context(), customerID, shopperKey(c))
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotAuthenticated):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
			case errors.Is(err, domain.ErrEmptyCart):
				c.JSON(http.StatusConflict, gin.H{"error": "cart is empty"})
			case errors.Is(err, domain.ErrSubmissionFailed):
				c.JSON(http.StatusBadGateway, gin.H{"error": "order submission failed, try again"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
			}
			return
		}
		c.JSON(http.StatusCreated, gin.H{"orderId": order.ID, "order": order})
	}
}

func listOrdersHandler(authSvc AuthService, svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := requireCustomer(c, authSvc)
		if !ok {
			return
		}
		orders, err := svc.ListOrders(c.Request.Context(), customerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order history unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func getOrderHandler(authSvc AuthService, svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := requireCustomer(c, authSvc)
		if !ok {
			return
		}
		order, err := svc.GetOrder(c.Request.Context(), customerID, c.Param("orderId"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order lookup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}
