package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/surya-platform/service-storefront/internal/auth"
	"github.com/surya-platform/service-storefront/internal/handlers"
	"github.com/surya-platform/service-storefront/internal/middleware"
)

// RouteConfig holds configuration for routes
type RouteConfig struct {
	DashboardHandler *handlers.DashboardHandler
	UserHandler      *handlers.UserHandler
	OrderHandler     *handlers.OrderHandler
	JWTManager       *auth.JWTManager
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *RouteConfig) {
	// API v1 routes
	v1 := router.Group("/api/v1")

	// Admin routes (require authentication and admin role)
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg.JWTManager))
	admin.Use(middleware.RequireAdmin())
	{
		// Dashboard statistics. The bare /dashboard path mirrors
		// /dashboard/stats for older frontend builds.
		admin.GET("/dashboard", cfg.DashboardHandler.GetStats)
		admin.GET("/dashboard/stats", cfg.DashboardHandler.GetStats)

		// User management
		users := admin.Group("/users")
		{
			users.GET("", cfg.UserHandler.GetUsers)
			users.GET("/:id", cfg.UserHandler.GetUser)
			users.PUT("/:id", cfg.UserHandler.UpdateUser)
			users.DELETE("/:id", cfg.UserHandler.DeleteUser)
		}

		// Order management
		orders := admin.Group("/orders")
		{
			orders.GET("", cfg.OrderHandler.GetOrders)
			orders.PUT("/:id/status", cfg.OrderHandler.UpdateOrderStatus)
		}
	}
}
