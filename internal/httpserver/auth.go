package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"boltstore/internal/domain"
	custrepo "boltstore/internal/repository/customer"
	"boltstore/internal/service/auth"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func signupHandler(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in auth.SignupInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		created, err := svc.Signup(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, custrepo.ErrEmailTaken) {
				c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"customer": created})
	}
}

func loginHandler(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		token, customer, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}
		c.SetCookie(sessionCookie, token, 0, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"token": token, "customer": customer})
	}
}

func logoutHandler(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Logout(c.Request.Context(), sessionToken(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
			return
		}
		c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
		c.Status(http.StatusNoContent)
	}
}

func meHandler(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, err := svc.CurrentCustomer(c.Request.Context(), sessionToken(c))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer": customer})
	}
}

type updateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func updateMeHandler(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		customer, err := svc.UpdateProfile(c.Request.Context(), sessionToken(c), req.FirstName, req.LastName)
		if err != nil {
			if errors.Is(err, domain.ErrNotAuthenticated) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "profile update failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer": customer})
	}
}

func deleteMeHandler(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteAccount(c.Request.Context(), sessionToken(c)); err != nil {
			if errors.Is(err, domain.ErrNotAuthenticated) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "account deletion failed"})
			return
		}
		c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
		c.Status(http.StatusNoContent)
	}
}
