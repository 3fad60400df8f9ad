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

	"gatherly/internal/handlers"
	"gatherly/internal/logger"
	"gatherly/internal/middleware"
	"gatherly/internal/models"
	"gatherly/internal/services"
	"gatherly/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
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
		&models.Group{},
		&models.GroupMember{},
		&models.Node{},
		&models.Event{},
		&models.EventRSVP{},
		&models.InvitedGuest{},
		&models.InsightPanel{},
		&models.SharedInsightPanel{},
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

	// Services
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

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	groupHandler := handlers.NewGroupHandler(groupService)
	eventHandler := handlers.NewEventHandler(eventService, accessService, rsvpService)
	insightHandler := handlers.NewInsightHandler(panelService, configService, eventSetService, analyticsService, shareService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	groups := protected.Group("/groups")
	groups.POST("", groupHandler.CreateGroup)
	groups.GET("", groupHandler.ListUserGroups)
	groups.GET("/:id", groupHandler.GetGroup)
	groups.POST("/:id/members", groupHandler.AddMember)
	groups.POST("/:id/nodes", groupHandler.CreateNode)
	groups.POST("/:id/events", eventHandler.CreateEvent)

	nodes := protected.Group("/nodes")
	nodes.PATCH("/:id", groupHandler.UpdateNode)
	nodes.DELETE("/:id", groupHandler.DeleteNode)

	events := protected.Group("/events")
	events.GET("/:id", eventHandler.GetEvent)
	events.PATCH("/:id", eventHandler.UpdateEvent)
	events.DELETE("/:id", eventHandler.DeleteEvent)
	events.PUT("/:id/rsvp", eventHandler.SetRSVP)
	events.GET("/:id/attendees", eventHandler.ListAttendees)
	events.POST("/:id/guests", eventHandler.InviteGuest)
	events.GET("/:id/guests", eventHandler.ListGuests)

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

	return &testApp{DB: db, Router: router}
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

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, username, email string) (token string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"email":%q,"password":"password123"}`, username, email)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(float64)
}

// createGroup creates a group and returns its ID.
func (app *testApp) createGroup(t *testing.T, token, name string) float64 {
	t.Helper()
	rec := app.request("POST", "/api/v1/groups", fmt.Sprintf(`{"name":%q}`, name), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create group failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["group"].(map[string]interface{})["id"].(float64)
}

// createNode creates a category node in a group and returns its ID.
func (app *testApp) createNode(t *testing.T, token string, groupID float64, label string) float64 {
	t.Helper()
	rec := app.request("POST", fmt.Sprintf("/api/v1/groups/%.0f/nodes", groupID),
		fmt.Sprintf(`{"label":%q,"x":0.5,"y":0.5}`, label), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create node failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["node"].(map[string]interface{})["id"].(float64)
}
