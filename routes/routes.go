package routes

import (
	"coffeeshop-api/auth"
	"coffeeshop-api/handlers"
	"coffeeshop-api/middleware"
	"coffeeshop-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, authSvc *auth.Service) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/signup", h.Signup)
		public.POST("/auth/login", h.Login)

		public.GET("/categories", h.ListCategories)
		public.GET("/categories/:id", h.GetCategory)
		public.GET("/menu/items", h.ListMenuItems)
		public.GET("/menu/items/:id", h.GetMenuItem)
	}

	authed := r.Group("/api")
	authed.Use(middleware.AuthRequired(authSvc))

	// ── Users ──────────────────────────────────────────────────────
	selfOrStaff := middleware.SelfLookup{Users: h.Users}
	{
		authed.GET("/users", middleware.RoleRequired(models.RoleBarista, models.RoleAdmin), h.ListUsers)
		authed.GET("/users/:id", middleware.OwnerOrRole(selfOrStaff, models.RoleBarista, models.RoleAdmin), h.GetUser)
		authed.PUT("/users/:id", middleware.OwnerOrRole(selfOrStaff, models.RoleAdmin), h.UpdateUser)
		authed.DELETE("/users/:id", middleware.RoleRequired(models.RoleAdmin), h.DeleteUser)
	}

	// ── Catalog management ─────────────────────────────────────────
	{
		authed.POST("/categories", middleware.RoleRequired(models.RoleAdmin), h.CreateCategory)
		authed.PUT("/categories/:id", middleware.RoleRequired(models.RoleAdmin), h.UpdateCategory)
		authed.DELETE("/categories/:id", middleware.RoleRequired(models.RoleAdmin), h.DeleteCategory)

		authed.POST("/menu/items", middleware.RoleRequired(models.RoleBarista, models.RoleAdmin), h.CreateMenuItem)
		authed.PUT("/menu/items/:id", middleware.RoleRequired(models.RoleBarista, models.RoleAdmin), h.UpdateMenuItem)
		authed.DELETE("/menu/items/:id", middleware.RoleRequired(models.RoleAdmin), h.DeleteMenuItem)
	}

	// ── Orders ─────────────────────────────────────────────────────
	{
		authed.POST("/orders", h.PlaceOrder)
		authed.GET("/orders", h.ListOrders)
		authed.GET("/orders/:id", middleware.OwnerOrRole(h.Orders, models.RoleBarista, models.RoleAdmin), h.GetOrder)
		authed.PUT("/orders/:id/status", middleware.RoleRequired(models.RoleBarista, models.RoleAdmin), h.UpdateOrderStatus)
		authed.DELETE("/orders/:id", middleware.OwnerOrRole(h.Orders, models.RoleAdmin), h.DeleteOrder)
	}
}
