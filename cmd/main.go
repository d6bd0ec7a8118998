package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"lifedrop/database"
	"lifedrop/internal/cache"
	"lifedrop/internal/controllers"
	"lifedrop/internal/logger"
	"lifedrop/internal/middleware"
	"lifedrop/internal/repository"
	"lifedrop/routes"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	logger.Setup()

	// Connect to database and run migrations
	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Redis is only a statistics cache; start without it if unavailable.
	redisClient, err := cache.NewRedisClient()
	if err != nil {
		logrus.WithError(err).Warn("Redis unavailable, statistics will be served uncached")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.DB)
	donationRepo := repository.NewDonationRepository(database.DB)
	requestRepo := repository.NewRequestRepository(database.DB)

	// Initialize controllers
	userController := controllers.NewUserController(userRepo, donationRepo, redisClient)
	donationController := controllers.NewDonationController(donationRepo, redisClient)
	requestController := controllers.NewRequestController(requestRepo, userRepo, redisClient)
	adminController := controllers.NewAdminController(userRepo)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	router.Use(middleware.CORS())

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "LifeDrop API is running",
			"version": "1.0.0",
			"status":  "healthy",
		})
	})

	routes.RegisterUserRoutes(router, userController)
	routes.RegisterDonationRoutes(router, donationController)
	routes.RegisterRequestRoutes(router, requestController)
	routes.RegisterAdminRoutes(router, adminController)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("LifeDrop API server starting on port %s", port)

	if err := server.ListenAndServe(); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
