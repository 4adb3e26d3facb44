package integration

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"uangsaku/internal/config"
	"uangsaku/internal/handlers"
	"uangsaku/internal/logger"
	"uangsaku/internal/middleware"
	"uangsaku/internal/services"
	"uangsaku/internal/store"
	"uangsaku/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	Store  *store.Store
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite store.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integration%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	st, err := store.New(db)
	if err != nil {
		t.Fatalf("failed to provision store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	cfg := &config.Config{DefaultCurrency: "IDR"}

	// Services
	transactionService := services.NewTransactionService(st)
	budgetService := services.NewBudgetService(st)
	goalService := services.NewGoalService(st)
	settingsService := services.NewSettingsService(st, cfg)
	analyticsService := services.NewAnalyticsService(transactionService)
	syncService := services.NewSyncService(transactionService, budgetService, goalService, settingsService)

	// Handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, transactionService)
	goalHandler := handlers.NewGoalHandler(goalService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	syncHandler := handlers.NewSyncHandler(syncService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

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

	return &testApp{Store: st, Router: router}
}

// request performs an HTTP request against the app and records the response.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// mustJSON decodes a response body into a generic map.
func mustJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response %q: %v", rec.Body.String(), err)
	}
	return result
}

// mustStatus fails the test if the response status differs.
func mustStatus(t *testing.T, rec *httptest.ResponseRecorder, expected int) {
	t.Helper()

	if rec.Code != expected {
		t.Fatalf("expected status %d, got %d: %s", expected, rec.Code, rec.Body.String())
	}
}
