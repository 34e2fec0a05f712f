package routes

import (
	"storefront/internal/core/container"
	"storefront/internal/middleware"
	"storefront/pkg/security"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes mounts the storefront surface: login and the read-only
// catalog.
func RegisterPublicRoutes(router *gin.Engine, c *container.Container) {
	c.LoginHandler.RegisterRoutes(router)
	c.CatalogHandler.RegisterRoutes(router.Group(""))
}

// RegisterProtectedRoutes mounts the back-office behind the JWT admin gate.
func RegisterProtectedRoutes(router *gin.Engine, c *container.Container) {
	admin := router.Group("")
	admin.Use(security.JWTMiddleware(), security.Authorize("admin"))

	c.InventoryHandler.RegisterRoutes(admin)
	c.SupplierHandler.RegisterRoutes(admin)
	c.SaleHandler.RegisterRoutes(admin)
	c.PaymentHandler.RegisterRoutes(admin)
	c.AnalyticsHandler.RegisterRoutes(admin)
	c.UserHandler.RegisterRoutes(admin)
	c.AuditLogHandler.RegisterRoutes(admin)
}

func RegisterUtilityRoutes(router *gin.Engine, uploadsDir string) {
	router.GET("/health", middleware.HealthCheckMiddleware())

	if uploadsDir != "" {
		router.Static("/uploads", uploadsDir)
	}
}
