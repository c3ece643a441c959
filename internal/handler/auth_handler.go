package handler

import (
	"net/http"

	"github.com/calltrack/dnc-registry/internal/middleware"
	"github.com/calltrack/dnc-registry/internal/service"
	"github.com/calltrack/dnc-registry/internal/utils"
	"github.com/calltrack/dnc-registry/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and sets the session cookie.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Login request parsing failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		bindError(c)
		return
	}

	logger.Log.Info("Login attempt",
		zap.String("username", req.Username),
		zap.String("ip", c.ClientIP()),
	)

	user, token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	// Token travels in an HTTP-only cookie, never in the body
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.TokenCookieName,
		token,
		7*24*60*60, // maxAge (7 days in seconds)
		"/",
		"",                           // domain (empty = current domain)
		h.authService.IsProduction(), // secure (HTTPS-only in production)
		true,                         // httpOnly
	)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// Logout revokes the current session token and clears the cookie.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claimsValue, exists := c.Get("claims")
	if !exists {
		// No valid session; clearing the cookie is still the right answer
		c.SetCookie(middleware.TokenCookieName, "", -1, "/", "", h.authService.IsProduction(), true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
		return
	}

	claims := claimsValue.(*utils.Claims)
	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie(middleware.TokenCookieName, "", -1, "/", "", h.authService.IsProduction(), true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
