package handlers

import (
	"net/http"

	"coffeeshop-api/models"

	"github.com/gin-gonic/gin"
)

// ListCategories returns all categories with their menu items (public)
func (h *Handler) ListCategories(c *gin.Context) {
	cats, err := h.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(cats), "categories": cats})
}

// GetCategory returns a single category (public)
func (h *Handler) GetCategory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}
	cat, err := h.Catalog.FindCategoryByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": cat})
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateCategory adds a new category — admin only
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	cat := &models.Category{Name: req.Name, Description: req.Description}
	if err := h.Catalog.CreateCategory(c.Request.Context(), cat); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": cat})
}

// UpdateCategory edits a category — admin only
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	cat, err := h.Catalog.FindCategoryByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if req.Name != "" {
		cat.Name = req.Name
	}
	if req.Description != "" {
		cat.Description = req.Description
	}
	if err := h.Catalog.UpdateCategory(c.Request.Context(), cat); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated", "category": cat})
}

// DeleteCategory removes a category — admin only
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}
	if err := h.Catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
