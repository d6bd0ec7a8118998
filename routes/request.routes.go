package routes

import (
	"github.com/gin-gonic/gin"

	"lifedrop/internal/controllers"
	"lifedrop/internal/middleware"
)

func RegisterRequestRoutes(router *gin.Engine, requestController *controllers.RequestController) {
	// Listing is public so the request board works without an account.
	router.GET("/api/requests", requestController.GetAllRequests)

	requestRoutes := router.Group("/api/requests")
	requestRoutes.Use(middleware.AuthMiddleware())
	{
		requestRoutes.POST("/", requestController.CreateRequestForSelf)
		requestRoutes.POST("/for-others", requestController.CreateRequestForOthers)
	}

	requestRoutesAdmin := router.Group("/api/requests")
	requestRoutesAdmin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		requestRoutesAdmin.GET("/count", requestController.GetRequestsCount)
		requestRoutesAdmin.PUT("/:id/status", requestController.UpdateRequestStatus)
		requestRoutesAdmin.DELETE("/:id", requestController.DeleteRequest)
	}
}
