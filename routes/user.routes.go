package routes

import (
	"github.com/gin-gonic/gin"

	"lifedrop/internal/controllers"
	"lifedrop/internal/middleware"
)

func RegisterUserRoutes(router *gin.Engine, userController *controllers.UserController) {
	userRoutesPublic := router.Group("/api/users")
	{
		userRoutesPublic.POST("/register", userController.RegisterUser)
		userRoutesPublic.POST("/login", userController.LoginUser)
	}

	userRoutesPrivate := router.Group("/api/users")
	userRoutesPrivate.Use(middleware.AuthMiddleware())
	{
		userRoutesPrivate.GET("/profile", userController.GetProfile)
		userRoutesPrivate.PUT("/profile", userController.UpdateProfile)
		userRoutesPrivate.PUT("/change-password", userController.ChangePassword)
		userRoutesPrivate.GET("/all-donors", userController.GetAllDonors)
	}

	userRoutesAdmin := router.Group("/api/users")
	userRoutesAdmin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		userRoutesAdmin.GET("/count", userController.GetUsersCount)
		userRoutesAdmin.GET("/top-cities", userController.GetTopCities)
		userRoutesAdmin.GET("/common-bloodgroup", userController.GetCommonBloodGroup)
	}

	// Static paths above win over the id wildcard.
	userRoutesPrivate.GET("/:id", userController.GetDonorByID)
}
