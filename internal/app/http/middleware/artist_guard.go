package middleware

import (
	"context"
	"net/http"

	"chitrakalakar-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AccountFinder interface {
	FindAccount(ctx context.Context, id string) (*users.Account, error)
}

// RequireActiveAccount rejects callers whose account was deleted or suspended
// after their token was issued. The account is stored under "account".
func RequireActiveAccount(accounts AccountFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		acc, err := accounts.FindAccount(c.Request.Context(), c.GetString("user_id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		if !acc.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
			return
		}
		c.Set("account", acc)
		c.Next()
	}
}

// RequireApprovedArtist loads the caller's account and rejects artists that
// are still pending review or suspended. The account is stored under
// "account" for handlers.
func RequireApprovedArtist(accounts AccountFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		acc, err := accounts.FindAccount(c.Request.Context(), c.GetString("user_id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		if acc.Role != users.RoleArtist {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Artist access required"})
			return
		}
		if !acc.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
			return
		}
		if !acc.IsApproved {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Your artist account is pending approval"})
			return
		}
		c.Set("account", acc)
		c.Next()
	}
}
