package routes

import (
	"github.com/gin-gonic/gin"

	"lifedrop/internal/controllers"
	"lifedrop/internal/middleware"
)

func RegisterAdminRoutes(router *gin.Engine, adminController *controllers.AdminController) {
	adminRoutes := router.Group("/api/admin/users")
	adminRoutes.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		adminRoutes.GET("/", adminController.GetAllUsers)
		adminRoutes.GET("/:id", adminController.GetUserByID)
		adminRoutes.PUT("/:id", adminController.UpdateUser)
		adminRoutes.DELETE("/:id", adminController.DeleteUser)
	}
}
