// Package handlers contains the HTTP boundary: request binding, error-to-
// status mapping, and JSON responses. All business decisions live in the
// auth, ordering and store packages.
package handlers

import (
	"errors"
	"net/http"

	"coffeeshop-api/auth"
	"coffeeshop-api/ordering"
	"coffeeshop-api/store"

	"github.com/gin-gonic/gin"
)

// Handler bundles the injected collaborators every route needs.
type Handler struct {
	Users    store.UserStore
	Catalog  store.CatalogStore
	Orders   store.OrderStore
	Auth     *auth.Service
	Ordering *ordering.Service
}

func New(users store.UserStore, catalog store.CatalogStore, orders store.OrderStore, authSvc *auth.Service, orderingSvc *ordering.Service) *Handler {
	return &Handler{
		Users:    users,
		Catalog:  catalog,
		Orders:   orders,
		Auth:     authSvc,
		Ordering: orderingSvc,
	}
}

// fail maps component errors onto HTTP status codes. Persistence details
// never leak: anything unclassified becomes an opaque 500.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Resource not found"})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"message": "Username or email already in use"})
	case errors.Is(err, auth.ErrInvalidCredential):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
	case errors.Is(err, ordering.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"message": "items required"})
	case errors.Is(err, ordering.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Quantity must be a positive integer"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
