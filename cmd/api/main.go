package main

import (
	"divvy/internal/config"
	"divvy/internal/database"
	"divvy/internal/handlers"
	"divvy/internal/logger"
	"divvy/internal/middleware"
	"divvy/internal/services"
	"divvy/internal/validator"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "divvy/internal/docs" // Import swagger docs
)

// @title           Divvy API
// @version         1.0
// @description     Divvy is an expense-splitting application: groups of users record shared expenses, split them equally, and settle up with each other.

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

	// Register custom request validators
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

	// Initialize services
	db := dbManager.DB()
	activityService := services.NewActivityService(db)
	userService := services.NewUserService(db)
	groupService := services.NewGroupService(db, activityService)
	friendService := services.NewFriendService(db, activityService)
	expenseService := services.NewExpenseService(db, groupService, activityService)
	balanceService := services.NewBalanceService(db)
	settlementService := services.NewSettlementService(db, activityService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	groupHandler := handlers.NewGroupHandler(groupService)
	friendHandler := handlers.NewFriendHandler(friendService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	balanceHandler := handlers.NewBalanceHandler(balanceService)
	settlementHandler := handlers.NewSettlementHandler(settlementService)
	activityHandler := handlers.NewActivityHandler(activityService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
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
	groups.GET("", groupHandler.GetUserGroups)
	groups.GET("/:id", groupHandler.GetGroupByID)
	groups.POST("/:id/members", groupHandler.AddMember)
	groups.GET("/:id/members", groupHandler.GetGroupMembers)
	groups.GET("/:id/expenses", expenseHandler.GetGroupExpenses)

	// Friend routes
	friends := protected.Group("/friends")
	friends.POST("", friendHandler.AddFriend)
	friends.GET("", friendHandler.GetFriends)
	friends.GET("/requests", friendHandler.GetPendingRequests)
	friends.POST("/:id/accept", friendHandler.AcceptFriend)
	friends.POST("/:id/decline", friendHandler.DeclineFriend)
	friends.POST("/:id/block", friendHandler.BlockFriend)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetUserExpenses)
	expenses.GET("/:id", expenseHandler.GetExpenseByID)

	// Balance routes
	protected.GET("/dashboard", balanceHandler.GetDashboard)

	// Settlement routes
	settlements := protected.Group("/settlements")
	settlements.POST("", settlementHandler.RecordSettlement)
	settlements.GET("", settlementHandler.GetUserSettlements)
	settlements.GET("/balances", settlementHandler.GetNetBalances)

	// Activity routes
	protected.GET("/activities", activityHandler.GetUserActivities)

	log.Infof("Starting Divvy backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
