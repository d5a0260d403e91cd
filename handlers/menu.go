package handlers

import (
	"net/http"

	"coffeeshop-api/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ListMenuItems returns menu items (public). Pass ?available=true to hide
// retired items.
func (h *Handler) ListMenuItems(c *gin.Context) {
	availableOnly := c.Query("available") == "true"
	items, err := h.Catalog.ListMenuItems(c.Request.Context(), availableOnly)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items})
}

// GetMenuItem returns a single menu item (public)
func (h *Handler) GetMenuItem(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}
	item, err := h.Catalog.FindMenuItemByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

type MenuItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	CategoryID  uint            `json:"category_id" binding:"required"`
	IsAvailable *bool           `json:"is_available"`
}

// CreateMenuItem adds a menu item — barista or admin
func (h *Handler) CreateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Price must not be negative"})
		return
	}
	if _, err := h.Catalog.FindCategoryByID(c.Request.Context(), req.CategoryID); err != nil {
		fail(c, err)
		return
	}

	item := &models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if err := h.Catalog.CreateMenuItem(c.Request.Context(), item); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item created", "item": item})
}

type UpdateMenuItemRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  uint             `json:"category_id"`
	IsAvailable *bool            `json:"is_available"`
}

// UpdateMenuItem edits a menu item — barista or admin
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}
	var req UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	item, err := h.Catalog.FindMenuItemByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Price must not be negative"})
			return
		}
		item.Price = *req.Price
	}
	if req.CategoryID != 0 {
		if _, err := h.Catalog.FindCategoryByID(c.Request.Context(), req.CategoryID); err != nil {
			fail(c, err)
			return
		}
		item.CategoryID = req.CategoryID
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	item.Category = nil

	if err := h.Catalog.UpdateMenuItem(c.Request.Context(), item); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

// DeleteMenuItem retires a menu item — admin only. The row is kept and
// flagged unavailable so historical orders stay intact.
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}
	if err := h.Catalog.SoftDeleteMenuItem(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
