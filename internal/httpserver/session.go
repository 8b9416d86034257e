package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"boltstore/internal/domain"
)

const (
	sessionCookie = "session_id"
	shopperCookie = "cart_id"
	shopperKeyKey = "shopperKey"
)

// sessionToken extracts the session token from the cookie or an
// Authorization bearer header.
func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// currentCustomerID resolves the request's session to a customer id,
// or "" when nobody is signed in. Only backend failures are errors.
func currentCustomerID(c *gin.Context, svc AuthService) (string, error) {
	id, err := svc.CurrentCustomerID(c.Request.Context(), sessionToken(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			return "", nil
		}
		return "", err
	}
	return id, nil
}

// shopperKeyMiddleware assigns each client instance a stable cart key.
// The key identifies the cart's snapshot slot and is independent of
// sign-in state, so carts fill before authentication and survive
// reloads.
func shopperKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := c.Cookie(shopperCookie)
		if err != nil || key == "" {
			key = uuid.NewString()
			c.SetCookie(shopperCookie, key, 0, "/", "", false, true)
		}
		c.Set(shopperKeyKey, key)
		c.Next()
	}
}

func shopperKey(c *gin.Context) string {
	return c.GetString(shopperKeyKey)
}

func requireCustomer(c *gin.Context, svc AuthService) (string, bool) {
	id, err := currentCustomerID(c, svc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
		return "", false
	}
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
		return "", false
	}
	return id, true
}
