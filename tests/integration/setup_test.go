package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"opsdeck/internal/handlers"
	"opsdeck/internal/logger"
	"opsdeck/internal/middleware"
	"opsdeck/internal/models"
	"opsdeck/internal/notify"
	"opsdeck/internal/querycache"
	"opsdeck/internal/services"
	"opsdeck/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Cache  *querycache.Cache
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Profile{},
		&models.Business{},
		&models.Department{},
		&models.Transaction{},
		&models.SavingsTarget{},
		&models.Investment{},
		&models.Goal{},
		&models.PlannerEvent{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	cache := querycache.New()
	notifier := notify.Nop{}

	// Services
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

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	profileHandler := handlers.NewProfileHandler(userService, auditService)
	businessHandler := handlers.NewBusinessHandler(businessService, departmentService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	savingsHandler := handlers.NewSavingsHandler(savingsService, auditService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService, auditService)
	goalHandler := handlers.NewGoalHandler(goalService, auditService)
	plannerHandler := handlers.NewPlannerHandler(plannerService, auditService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", profileHandler.GetProfile)
	protected.PUT("/profile", profileHandler.UpdateProfile)
	protected.GET("/dashboard", dashboardHandler.GetSummary)

	businesses := protected.Group("/businesses")
	businesses.POST("", businessHandler.CreateBusiness)
	businesses.GET("", businessHandler.GetBusinesses)
	businesses.GET("/:id", businessHandler.GetBusiness)
	businesses.PUT("/:id", businessHandler.UpdateBusiness)
	businesses.DELETE("/:id", businessHandler.DeleteBusiness)
	businesses.POST("/:id/departments", businessHandler.CreateDepartment)
	protected.GET("/departments", businessHandler.GetDepartments)
	protected.DELETE("/departments/:id", businessHandler.DeleteDepartment)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	savings := protected.Group("/savings")
	savings.POST("", savingsHandler.CreateTarget)
	savings.GET("", savingsHandler.GetTargets)
	savings.PUT("/:id", savingsHandler.UpdateTarget)
	savings.DELETE("/:id", savingsHandler.DeleteTarget)

	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.GetInvestments)
	investments.PUT("/:id", investmentHandler.UpdateInvestment)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)

	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.PATCH("/:id/progress", goalHandler.UpdateProgress)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	planner := protected.Group("/planner")
	planner.POST("/events", plannerHandler.CreateEvent)
	planner.GET("/events", plannerHandler.GetDayEvents)
	planner.GET("/week", plannerHandler.GetWeekEvents)
	planner.PATCH("/events/:id/toggle", plannerHandler.ToggleComplete)
	planner.DELETE("/events/:id", plannerHandler.DeleteEvent)

	return &testApp{DB: db, Cache: cache, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"full_name":"Test User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(float64)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}
