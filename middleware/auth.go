package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"coffeeshop-api/auth"
	"coffeeshop-api/models"
	"coffeeshop-api/store"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// AuthRequired validates the bearer token and injects the resolved identity
// into the request context.
func AuthRequired(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header required (Bearer <token>)"})
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		ident, err := svc.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": authMessage(err)})
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

func authMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrMissingCredential):
		return "Token missing"
	case errors.Is(err, auth.ErrExpiredCredential):
		return "Token expired"
	case errors.Is(err, auth.ErrUnknownSubject):
		return "User not found"
	default:
		return "Invalid token"
	}
}

// RoleRequired enforces that the caller has one of the allowed roles.
func RoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := GetIdentity(c)
		if ident == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}
		for _, r := range roles {
			if ident.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden: insufficient role"})
	}
}

// OwnerLookup resolves a resource id to the id of the user owning it.
// Implementations return store.ErrNotFound when the resource does not exist.
type OwnerLookup interface {
	OwnerOf(ctx context.Context, resourceID uint) (ownerID uint, err error)
}

// OwnerOrRole allows the request when the caller holds one of the given
// roles, or owns the resource named by the :id path parameter. A resource
// that does not exist yields 404, not 403.
func OwnerOrRole(lookup OwnerLookup, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := GetIdentity(c)
		if ident == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}
		for _, r := range roles {
			if ident.Role == r {
				c.Next()
				return
			}
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
			return
		}
		ownerID, err := lookup.OwnerOf(c.Request.Context(), uint(id))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Resource not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Ownership check failed"})
			return
		}
		if ownerID != ident.ID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden: not owner"})
			return
		}
		c.Next()
	}
}

// SelfLookup treats the resource id itself as the owner id, for routes like
// /users/:id where a user owns their own record.
type SelfLookup struct {
	Users store.UserStore
}

func (l SelfLookup) OwnerOf(ctx context.Context, id uint) (uint, error) {
	if _, err := l.Users.FindByID(ctx, id); err != nil {
		return 0, err
	}
	return id, nil
}

// GetIdentity extracts the authenticated identity from the context. Nil when
// AuthRequired did not run.
func GetIdentity(c *gin.Context) *auth.Identity {
	val, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	ident, _ := val.(*auth.Identity)
	return ident
}
