package middleware

import (
	"net/http"
	"strings"

	"github.com/calltrack/dnc-registry/internal/apperr"
	"github.com/calltrack/dnc-registry/internal/models"
	"github.com/calltrack/dnc-registry/internal/session"
	"github.com/calltrack/dnc-registry/internal/utils"
	"github.com/gin-gonic/gin"
)

// TokenCookieName is the session cookie set on login.
const TokenCookieName = "token"

// extractToken reads the session token from the Authorization header or,
// failing that, the login cookie.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString != authHeader {
			return tokenString
		}
	}

	cookie, err := c.Cookie(TokenCookieName)
	if err != nil {
		return ""
	}
	return cookie
}

// AccessControl validates the session claim (if any) and applies the route
// policy to every request: allow, redirect between the seller and admin
// trees, or reject. Invalid, expired and revoked tokens are all treated as
// an absent claim.
func AccessControl(jwtSecret string, revocations session.RevocationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var claims *utils.Claims

		if tokenString := extractToken(c); tokenString != "" {
			parsed, err := utils.ValidateToken(tokenString, jwtSecret)
			if err == nil {
				revoked, revErr := revocations.IsRevoked(c.Request.Context(), parsed.ID)
				if revErr == nil && !revoked {
					claims = parsed
				}
			}
		}

		var role *models.Role
		if claims != nil {
			role = &claims.Role
		}

		result := Decide(c.Request.URL.Path, role)

		switch result.Decision {
		case DecisionRedirect:
			c.Redirect(http.StatusFound, result.Location)
			c.Abort()
			return

		case DecisionUnauthorized:
			if IsAPIPath(c.Request.URL.Path) {
				c.JSON(http.StatusUnauthorized, apperr.Unauthenticated("authentication required"))
			} else {
				c.Redirect(http.StatusFound, SignInPath)
			}
			c.Abort()
			return
		}

		if claims != nil {
			c.Set("user_id", claims.UserID)
			c.Set("user_username", claims.Username)
			c.Set("user_role", claims.Role)
			c.Set("claims", claims)
		}

		c.Next()
	}
}

// RequireRole gates a route group on a role claim. It runs behind
// AccessControl, so a missing claim means the route was not protected by
// the policy tables.
func RequireRole(required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusUnauthorized, apperr.Unauthenticated("authentication required"))
			c.Abort()
			return
		}

		if role != required {
			c.JSON(http.StatusForbidden, apperr.Forbidden("access denied"))
			c.Abort()
			return
		}

		c.Next()
	}
}
