package app

import (
	"net/http"
	"strings"
	"time"

	"lab_inventory_lending/auth"
	"lab_inventory_lending/db"
	"lab_inventory_lending/models"
	"lab_inventory_lending/session"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token, rejects revoked tokens, and
// confirms the user still exists. The resolved identity is the only thing
// downstream handlers trust.
func AuthRequired(cfg Config, repo *db.Repo, tokens *session.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"success": false, "message": "Missing Authorization header"})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims, err := auth.ValidateToken(cfg.JWTSecret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"success": false, "message": "Invalid token"})
			return
		}

		if revoked, err := tokens.IsRevoked(c.Request.Context(), claims.ID); err == nil && revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"success": false, "message": "Token revoked"})
			return
		}

		u, err := repo.FindUserByID(c.Request.Context(), claims.UserID)
		if err != nil || !u.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"success": false, "message": "Invalid token user"})
			return
		}

		c.Set("userID", u.ID)
		c.Set("userRole", u.Role)
		c.Set("tokenJTI", claims.ID)
		c.Set("tokenExp", claims.ExpiresAt.Time)
		c.Next()
	}
}

// AdminOnly assumes AuthRequired already ran and set userRole.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("userRole")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"success": false, "message": "Unauthorized"})
			return
		}
		if role, _ := v.(string); role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"success": false, "message": "Admin access required"})
			return
		}
		c.Next()
	}
}

// TokenExpiry reads the current token's expiry out of the context.
func TokenExpiry(c *gin.Context) time.Time {
	if v, ok := c.Get("tokenExp"); ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}
