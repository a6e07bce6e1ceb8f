package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"astracms/pkg/utils"
)

const roleSuperAdmin = "super_admin"

// Context keys set by RequireAuth / OptionalAuth.
const (
	CtxAccountID = "account_id"
	CtxEmail     = "email"
	CtxRole      = "role"
)

// PermissionChecker reports whether an account currently holds a named
// permission. Lookups go to the store, never the token: a token carries
// identity and role only, so permission edits take effect immediately.
type PermissionChecker interface {
	HasPermission(ctx context.Context, accountID string, permission string) (bool, error)
}

// RequireAuth resolves the bearer token and attaches identity to the request.
// Expired and malformed tokens get distinct messages but the same 401.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, "No token provided")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token, secret)
		if err != nil {
			if errors.Is(err, utils.ErrTokenExpired) {
				utils.RespondError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				utils.RespondError(c, http.StatusUnauthorized, "Invalid token")
			}
			c.Abort()
			return
		}

		c.Set(CtxAccountID, claims.AccountID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// OptionalAuth attaches identity when a valid token is present and treats
// everything else, including a broken token, as anonymous.
func OptionalAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if token != "" {
			if claims, err := utils.ValidateToken(token, secret); err == nil {
				c.Set(CtxAccountID, claims.AccountID)
				c.Set(CtxEmail, claims.Email)
				c.Set(CtxRole, claims.Role)
			}
		}
		c.Next()
	}
}

// RequireRole allows the request through only when the caller's role is in
// the allow-list. Must run after RequireAuth.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if role == "" {
			utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
	}
}

// RequirePermission checks a named permission flag against the store.
// super_admin passes unconditionally. Must run after RequireAuth.
func RequirePermission(checker PermissionChecker, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := c.GetString(CtxAccountID)
		if accountID == "" {
			utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		if c.GetString(CtxRole) == roleSuperAdmin {
			c.Next()
			return
		}

		ok, err := checker.HasPermission(c.Request.Context(), accountID, permission)
		if err != nil {
			if errors.Is(err, utils.ErrAccountNotFound) {
				utils.RespondError(c, http.StatusForbidden, "No permissions found for user")
			} else {
				utils.RespondError(c, http.StatusInternalServerError, "Failed to verify permissions")
			}
			c.Abort()
			return
		}

		if !ok {
			utils.RespondError(c, http.StatusForbidden, "Missing required permission: "+permission)
			c.Abort()
			return
		}

		c.Next()
	}
}
