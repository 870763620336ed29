package main

import (
	"fmt"
	"net/http"
	"os"

	"opsdeck/internal/config"
	"opsdeck/internal/database"
	"opsdeck/internal/handlers"
	"opsdeck/internal/logger"
	"opsdeck/internal/middleware"
	"opsdeck/internal/notify"
	"opsdeck/internal/querycache"
	"opsdeck/internal/services"
	"opsdeck/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "opsdeck/internal/docs" // Import swagger docs
)

// @title           Opsdeck API
// @version         1.0
// @description     Opsdeck is a personal operations dashboard covering business tracking, financial ledgers, goal tracking, and a day planner.
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

	// Register custom validation tags
	validator.Register()

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

	// One process-wide query cache; every read goes through it and
	// every mutation invalidates through it.
	cache := querycache.New()
	notifier := notify.NewLogNotifier()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db, cache)
	businessService := services.NewBusinessService(db, cache, notifier)
	departmentService := services.NewDepartmentService(db, cache, notifier)
	transactionService := services.NewTransactionService(db, cache, notifier)
	savingsService := services.NewSavingsService(db, cache, notifier)
	investmentService := services.NewInvestmentService(db, cache, notifier)
	goalService := services.NewGoalService(db, cache, notifier)
	plannerService := services.NewPlannerService(db, cache, notifier)
	dashboardService := services.NewDashboardService(businessService, transactionService, savingsService, goalService, plannerService)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	profileHandler := handlers.NewProfileHandler(userService, auditService)
	businessHandler := handlers.NewBusinessHandler(businessService, departmentService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	savingsHandler := handlers.NewSavingsHandler(savingsService, auditService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService, auditService)
	goalHandler := handlers.NewGoalHandler(goalService, auditService)
	plannerHandler := handlers.NewPlannerHandler(plannerService, auditService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

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
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Profile
	protected.GET("/profile", profileHandler.GetProfile)
	protected.PUT("/profile", profileHandler.UpdateProfile)

	// Dashboard
	protected.GET("/dashboard", dashboardHandler.GetSummary)

	// Business routes
	businesses := protected.Group("/businesses")
	businesses.POST("", businessHandler.CreateBusiness)
	businesses.GET("", businessHandler.GetBusinesses)
	businesses.GET("/:id", businessHandler.GetBusiness)
	businesses.PUT("/:id", businessHandler.UpdateBusiness)
	businesses.DELETE("/:id", businessHandler.DeleteBusiness)
	businesses.POST("/:id/departments", businessHandler.CreateDepartment)
	protected.GET("/departments", businessHandler.GetDepartments)
	protected.DELETE("/departments/:id", businessHandler.DeleteDepartment)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Savings routes
	savings := protected.Group("/savings")
	savings.POST("", savingsHandler.CreateTarget)
	savings.GET("", savingsHandler.GetTargets)
	savings.PUT("/:id", savingsHandler.UpdateTarget)
	savings.DELETE("/:id", savingsHandler.DeleteTarget)

	// Investment routes
	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.GetInvestments)
	investments.PUT("/:id", investmentHandler.UpdateInvestment)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)

	// Goal routes
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.PATCH("/:id/progress", goalHandler.UpdateProgress)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	// Planner routes
	planner := protected.Group("/planner")
	planner.POST("/events", plannerHandler.CreateEvent)
	planner.GET("/events", plannerHandler.GetDayEvents)
	planner.GET("/week", plannerHandler.GetWeekEvents)
	planner.PATCH("/events/:id/toggle", plannerHandler.ToggleComplete)
	planner.DELETE("/events/:id", plannerHandler.DeleteEvent)

	log.Infof("Starting Opsdeck backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
