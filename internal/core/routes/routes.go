package routes

import (
	"github.com/gin-gonic/gin"

	"inventory/internal/core/container"
	"inventory/internal/middleware"
	"inventory/pkg/security"
)

func RegisterPublicRoutes(router *gin.Engine, container *container.Container) {
	container.LoginHandler.RegisterRoutes(router)
}

func RegisterProtectedRoutes(router *gin.Engine, container *container.Container) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())

	container.AssetHandler.RegisterRoutes(protectedRoutes)
	container.LocationHandler.RegisterRoutes(protectedRoutes)
	container.PartHandler.RegisterRoutes(protectedRoutes)
	container.StockHandler.RegisterRoutes(protectedRoutes)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckMiddleware())
}
