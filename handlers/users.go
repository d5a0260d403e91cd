package handlers

import (
	"net/http"
	"strconv"

	"coffeeshop-api/middleware"
	"coffeeshop-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// ListUsers returns all users — staff only
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	views := make([]gin.H, 0, len(users))
	for i := range users {
		views = append(views, userView(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"count": len(views), "users": views})
}

// GetUser returns a single user — self or staff
func (h *Handler) GetUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}
	user, err := h.Users.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userView(user)})
}

type UpdateUserRequest struct {
	Username string      `json:"username"`
	Email    string      `json:"email" binding:"omitempty,email"`
	Password string      `json:"password" binding:"omitempty,min=6"`
	Role     models.Role `json:"role"`
}

// UpdateUser patches a user's profile. Only admins may change roles.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.Users.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		if !req.Role.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid role. Must be: customer, barista, or admin"})
			return
		}
		ident := middleware.GetIdentity(c)
		if ident == nil || ident.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"message": "Only admins can change roles"})
			return
		}
		user.Role = req.Role
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := h.Users.Update(c.Request.Context(), user); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated", "user": userView(user)})
}

// DeleteUser removes a user account — admin only
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}
	if err := h.Users.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// pathID parses the :id path parameter, writing a 400 on failure.
func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return 0, err
	}
	return uint(id), nil
}
