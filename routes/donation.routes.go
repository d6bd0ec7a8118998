package routes

import (
	"github.com/gin-gonic/gin"

	"lifedrop/internal/controllers"
	"lifedrop/internal/middleware"
)

func RegisterDonationRoutes(router *gin.Engine, donationController *controllers.DonationController) {
	donationRoutes := router.Group("/api/donations")
	donationRoutes.Use(middleware.AuthMiddleware())
	{
		donationRoutes.POST("/", donationController.AddDonation)
		donationRoutes.GET("/my", donationController.GetMyDonations)
		donationRoutes.GET("/eligibility", donationController.GetEligibility)
		donationRoutes.GET("/donor/:id", donationController.GetDonorDonations)
	}

	donationRoutesAdmin := router.Group("/api/donations")
	donationRoutesAdmin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		donationRoutesAdmin.GET("/", donationController.GetAllDonations)
		donationRoutesAdmin.GET("/count", donationController.GetDonationsCount)
		donationRoutesAdmin.DELETE("/:id", donationController.DeleteDonation)
	}
}
