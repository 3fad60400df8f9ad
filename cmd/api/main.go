package main

import (
	"fmt"
	"net/http"
	"os"

	"gatherly/internal/config"
	"gatherly/internal/database"
	"gatherly/internal/handlers"
	"gatherly/internal/logger"
	"gatherly/internal/middleware"
	"gatherly/internal/services"
	"gatherly/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "gatherly/internal/docs" // Import swagger docs
)

// @title           Gatherly API
// @version         1.0
// @description     Gatherly is a group event planning application: groups organize events on a shared board, members RSVP, and insight panels aggregate spending, locations, and attendance.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom validation tags
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	groupService := services.NewGroupService(db)
	accessService := services.NewAccessService(db)
	rsvpService := services.NewRSVPService(db)
	eventService := services.NewEventService(db, accessService, groupService)
	panelService := services.NewPanelService(db)
	configService := services.NewConfigService(db)
	eventSetService := services.NewEventSetService(db, rsvpService)
	analyticsService := services.NewAnalyticsService(db)
	shareService := services.NewShareService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	groupHandler := handlers.NewGroupHandler(groupService)
	eventHandler := handlers.NewEventHandler(eventService, accessService, rsvpService)
	insightHandler := handlers.NewInsightHandler(panelService, configService, eventSetService, analyticsService, shareService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Group routes
	groups := protected.Group("/groups")
	groups.POST("", groupHandler.CreateGroup)
	groups.GET("", groupHandler.ListUserGroups)
	groups.GET("/:id", groupHandler.GetGroup)
	groups.POST("/:id/members", groupHandler.AddMember)
	groups.POST("/:id/nodes", groupHandler.CreateNode)
	groups.POST("/:id/events", eventHandler.CreateEvent)

	// Node routes
	nodes := protected.Group("/nodes")
	nodes.PATCH("/:id", groupHandler.UpdateNode)
	nodes.DELETE("/:id", groupHandler.DeleteNode)

	// Event routes
	events := protected.Group("/events")
	events.GET("/:id", eventHandler.GetEvent)
	events.PATCH("/:id", eventHandler.UpdateEvent)
	events.DELETE("/:id", eventHandler.DeleteEvent)
	events.PUT("/:id/rsvp", eventHandler.SetRSVP)
	events.GET("/:id/attendees", eventHandler.ListAttendees)
	events.POST("/:id/guests", eventHandler.InviteGuest)
	events.GET("/:id/guests", eventHandler.ListGuests)

	// Insight routes
	insights := protected.Group("/insights")
	insights.POST("/panels", insightHandler.CreatePanel)
	insights.GET("/panels", insightHandler.ListPanels)
	insights.PUT("/panels/reorder", insightHandler.ReorderPanels)
	insights.GET("/panels/:id", insightHandler.GetPanel)
	insights.PATCH("/panels/:id", insightHandler.UpdatePanel)
	insights.DELETE("/panels/:id", insightHandler.DeletePanel)
	insights.GET("/panels/:id/report", insightHandler.GetPanelReport)
	insights.POST("/panels/:id/share", insightHandler.SharePanel)
	insights.GET("/reports/:type", insightHandler.GetReport)
	insights.GET("/shares", insightHandler.ListReceivedShares)
	insights.GET("/shares/:id/report", insightHandler.GetSharedReport)
	insights.DELETE("/shares/:id", insightHandler.RevokeShare)

	log.Infof("Starting Gatherly backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
