package handlers

import (
	"errors"
	"net/http"

	"coffeeshop-api/middleware"
	"coffeeshop-api/models"
	"coffeeshop-api/ordering"
	"coffeeshop-api/statemachine"

	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	Items []ordering.CartLine `json:"items" binding:"required,min=1,dive"`
}

// PlaceOrder creates a new order for the authenticated user
func (h *Handler) PlaceOrder(c *gin.Context) {
	ident := middleware.GetIdentity(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "items required"})
		return
	}

	order, err := h.Ordering.PlaceOrder(c.Request.Context(), ident.ID, req.Items)
	if err != nil {
		var unavailable *ordering.UnavailableError
		if errors.As(err, &unavailable) {
			availableIDs := make([]uint, 0, len(unavailable.Available))
			for _, item := range unavailable.Available {
				availableIDs = append(availableIDs, item.ID)
			}
			c.JSON(http.StatusBadRequest, gin.H{
				"message":         "Some items are unavailable or do not exist",
				"missing":         unavailable.Missing,
				"available":       availableIDs,
				"available_items": unavailable.Available,
			})
			return
		}
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// ListOrders returns the caller's own orders for customers, and every order
// for baristas and admins
func (h *Handler) ListOrders(c *gin.Context) {
	ident := middleware.GetIdentity(c)

	var (
		orders []models.Order
		err    error
	)
	if ident.Role == models.RoleCustomer {
		orders, err = h.Orders.ListByUser(c.Request.Context(), ident.ID)
	} else {
		orders, err = h.Orders.ListAll(c.Request.Context())
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrder returns a single order. Ownership is enforced by the route's
// OwnerOrRole middleware: a customer only ever reaches this for their own
// orders.
func (h *Handler) GetOrder(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}
	order, err := h.Orders.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus transitions an order — barista or admin only
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	id, err := pathID(c)
	if err != nil {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	order, err := h.Ordering.TransitionStatus(c.Request.Context(), id, req.Status, ident.Role)
	if err != nil {
		if errors.Is(err, ordering.ErrInvalidTransition) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message":           "Invalid status transition",
				"requested":         req.Status,
				"valid_next_states": validNextStates(c, h, id),
			})
			return
		}
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Order status updated",
		"order_id":       order.ID,
		"current_status": order.Status,
	})
}

func validNextStates(c *gin.Context, h *Handler, id uint) []models.OrderStatus {
	order, err := h.Orders.FindByID(c.Request.Context(), id)
	if err != nil {
		return nil
	}
	return statemachine.ValidTransitionsFrom(order.Status)
}

// DeleteOrder removes an order and its lines. The route's OwnerOrRole
// middleware restricts this to the purchaser or an admin.
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}
	if err := h.Orders.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
