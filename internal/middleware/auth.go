package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vitalhq/medboard/backend/internal/tabs"
	"github.com/vitalhq/medboard/backend/internal/utils"
)

const (
	ContextUserID       = "user_id"
	ContextUsername     = "username"
	ContextOrgID        = "organization_id"
	ContextRoleID       = "role_id"
	ContextIsAdmin      = "is_admin"
	ContextIsSuperadmin = "is_superadmin"
)

// AuthRequired is a middleware that checks for a valid JWT token
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := parts[1]
		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		// Set user info in context
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextOrgID, claims.OrganizationID)
		c.Set(ContextRoleID, claims.RoleID)
		c.Set(ContextIsAdmin, claims.IsAdmin)
		c.Set(ContextIsSuperadmin, claims.IsSuperadmin)

		c.Next()
	}
}

// AdminRequired is a middleware that checks for organization admin rights.
// Superadmins pass as well.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetIsAdmin(c) && !GetIsSuperadmin(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// SuperadminRequired is a middleware that restricts a route to platform
// superadmins.
func SuperadminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetIsSuperadmin(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "superadmin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID gets the current user ID from context
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextUserID); exists {
		return id.(uint)
	}
	return 0
}

// GetUsername gets the current username from context
func GetUsername(c *gin.Context) string {
	if username, exists := c.Get(ContextUsername); exists {
		return username.(string)
	}
	return ""
}

// GetOrgID gets the current user's organization ID from context. Zero
// means no organization (superadmins).
func GetOrgID(c *gin.Context) uint {
	if id, exists := c.Get(ContextOrgID); exists {
		return id.(uint)
	}
	return 0
}

// GetRoleID gets the current user's role ID from context, nil when the
// user has no role.
func GetRoleID(c *gin.Context) *uint {
	if id, exists := c.Get(ContextRoleID); exists {
		if v := id.(uint); v != 0 {
			return &v
		}
	}
	return nil
}

// GetIsAdmin reports whether the current user is an organization admin.
func GetIsAdmin(c *gin.Context) bool {
	if v, exists := c.Get(ContextIsAdmin); exists {
		return v.(bool)
	}
	return false
}

// GetIsSuperadmin reports whether the current user is a platform
// superadmin.
func GetIsSuperadmin(c *gin.Context) bool {
	if v, exists := c.Get(ContextIsSuperadmin); exists {
		return v.(bool)
	}
	return false
}

// GetIdentity assembles the caller's identity for the tab engine.
func GetIdentity(c *gin.Context) tabs.Identity {
	return tabs.Identity{
		OrganizationID: GetOrgID(c),
		RoleID:         GetRoleID(c),
		UserID:         GetUserID(c),
		IsAdmin:        GetIsAdmin(c) || GetIsSuperadmin(c),
	}
}
