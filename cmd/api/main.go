package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"uangsaku/internal/config"
	"uangsaku/internal/handlers"
	"uangsaku/internal/logger"
	"uangsaku/internal/middleware"
	"uangsaku/internal/services"
	"uangsaku/internal/store"
	"uangsaku/internal/validator"
)

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

	// Open the local store; first open provisions the schema
	st, err := store.Open(appConfig.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := store.Shutdown(); err != nil {
			log.Warnf("store shutdown error: %v", err)
		}
	}()

	// Initialize services
	transactionService := services.NewTransactionService(st)
	budgetService := services.NewBudgetService(st)
	goalService := services.NewGoalService(st)
	settingsService := services.NewSettingsService(st, appConfig)
	analyticsService := services.NewAnalyticsService(transactionService)
	syncService := services.NewSyncService(transactionService, budgetService, goalService, settingsService)

	// Initialize handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, transactionService)
	goalHandler := handlers.NewGoalHandler(goalService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	syncHandler := handlers.NewSyncHandler(syncService)

	// Register custom binding validators
	validator.Register()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		transactions := v1.Group("/transactions")
		{
			transactions.POST("", transactionHandler.CreateTransaction)
			transactions.GET("", transactionHandler.GetTransactions)
			transactions.GET("/:id", transactionHandler.GetTransactionByID)
			transactions.PUT("/:id", transactionHandler.UpdateTransaction)
			transactions.DELETE("/:id", transactionHandler.DeleteTransaction)
		}

		budgets := v1.Group("/budgets")
		{
			budgets.GET("", budgetHandler.GetBudgets)
			budgets.GET("/alerts", budgetHandler.GetAlerts)
			budgets.PUT("/global", budgetHandler.SaveGlobalLimit)
			budgets.PUT("/categories/:category", budgetHandler.SaveCategoryLimit)
			budgets.DELETE("/categories/:category", budgetHandler.RemoveCategoryLimit)
		}

		goals := v1.Group("/goals")
		{
			goals.POST("", goalHandler.CreateGoal)
			goals.GET("", goalHandler.GetGoals)
			goals.GET("/:id", goalHandler.GetGoalByID)
			goals.PUT("/:id", goalHandler.UpdateGoal)
			goals.DELETE("/:id", goalHandler.DeleteGoal)
		}

		settings := v1.Group("/settings")
		{
			settings.GET("", settingsHandler.GetSettings)
			settings.GET("/:key", settingsHandler.GetSetting)
			settings.PUT("/:key", settingsHandler.SetSetting)
		}

		analytics := v1.Group("/analytics")
		{
			analytics.GET("/summary", analyticsHandler.GetSummary)
			analytics.GET("/cashflow", analyticsHandler.GetDailyCashflow)
			analytics.GET("/monthly", analyticsHandler.GetMonthlyComparison)
			analytics.GET("/categories", analyticsHandler.GetCategoryTotals)
		}

		sync := v1.Group("/sync")
		{
			sync.GET("/export", syncHandler.Export)
			sync.POST("/import", syncHandler.Import)
			sync.POST("/reset", syncHandler.Reset)
		}
	}

	log.Infof("Starting server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
