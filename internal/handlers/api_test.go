package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gymtrack/gymtrack-backend/internal/config"
	"github.com/gymtrack/gymtrack-backend/internal/database"
	"github.com/gymtrack/gymtrack-backend/internal/handlers"
	"github.com/gymtrack/gymtrack-backend/internal/middleware"
	"github.com/gymtrack/gymtrack-backend/internal/routes"
	"github.com/gymtrack/gymtrack-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const sessionCookie = "gym_session"

func testConfig() *config.Config {
	return &config.Config{
		SessionTTL:        time.Hour,
		SessionCookie:     sessionCookie,
		SeedOwnerUsername: "admin",
		SeedOwnerEmail:    "admin@gym.com",
		SeedOwnerPassword: "admin123",
		SeedOwnerName:     "Gym Owner",
		APIRateLimit:      10000,
		AuthRateLimit:     10000,
	}
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := database.OpenTest(t)
	cfg := testConfig()
	store := middleware.NewSessionStore(cfg)

	authService := services.NewAuthService(db)
	require.NoError(t, authService.EnsureDefaultOwner(cfg))

	app := fiber.New()
	routes.Setup(app, cfg, store,
		handlers.NewAuthHandler(authService, store),
		handlers.NewActivityHandler(services.NewActivityService(db)),
		handlers.NewAdminHandler(services.NewAdminService(db)),
		handlers.NewHealthHandler(db),
	)
	return app, db
}

// request performs a JSON request, optionally with a session cookie, and
// decodes the envelope into a map.
func request(t *testing.T, app *fiber.App, method, path string, body interface{}, cookie string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: cookie})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	payload := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp, payload
}

func register(t *testing.T, app *fiber.App, name, username, email, userType string) {
	t.Helper()
	_, payload := request(t, app, fiber.MethodPost, "/api/register", fiber.Map{
		"name":     name,
		"username": username,
		"email":    email,
		"password": "secret",
		"userType": userType,
	}, "")
	require.Equal(t, true, payload["success"], "registration of %s failed: %v", username, payload)
}

func login(t *testing.T, app *fiber.App, username, password, userType string) string {
	t.Helper()
	resp, payload := request(t, app, fiber.MethodPost, "/api/login", fiber.Map{
		"username": username,
		"password": password,
		"userType": userType,
	}, "")
	require.Equal(t, true, payload["success"], "login of %s failed: %v", username, payload)

	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			return c.Value
		}
	}
	t.Fatalf("no session cookie in login response for %s", username)
	return ""
}

func TestUnauthenticatedActivitiesRejected(t *testing.T) {
	app, _ := newTestApp(t)

	resp, payload := request(t, app, fiber.MethodGet, "/api/activities", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, payload["success"])
}

func TestLoginInvalidCredentialsAreGeneric(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, app, "Bob", "bob", "bob@x.com", "user")

	// Wrong password and unknown account look identical
	_, wrongPass := request(t, app, fiber.MethodPost, "/api/login", fiber.Map{
		"username": "bob", "password": "nope", "userType": "user",
	}, "")
	_, unknown := request(t, app, fiber.MethodPost, "/api/login", fiber.Map{
		"username": "ghost", "password": "nope", "userType": "user",
	}, "")

	assert.Equal(t, false, wrongPass["success"])
	assert.Equal(t, false, unknown["success"])
	assert.Equal(t, wrongPass["message"], unknown["message"])

	// Right credentials under the wrong role also fail
	_, wrongRole := request(t, app, fiber.MethodPost, "/api/login", fiber.Map{
		"username": "bob", "password": "secret", "userType": "owner",
	}, "")
	assert.Equal(t, false, wrongRole["success"])
}

func TestDuplicateRegistration(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, app, "Bob", "bob", "bob@x.com", "user")

	_, payload := request(t, app, fiber.MethodPost, "/api/register", fiber.Map{
		"name": "Imposter", "username": "bob", "email": "other@x.com",
		"password": "secret", "userType": "owner",
	}, "")
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Username or email already exists", payload["message"])
}

func TestCurrentUserLifecycle(t *testing.T) {
	app, _ := newTestApp(t)

	_, anonymous := request(t, app, fiber.MethodGet, "/api/current-user", nil, "")
	assert.Equal(t, false, anonymous["success"])

	register(t, app, "Bob", "bob", "bob@x.com", "user")
	cookie := login(t, app, "bob", "secret", "user")

	_, current := request(t, app, fiber.MethodGet, "/api/current-user", nil, cookie)
	require.Equal(t, true, current["success"])
	assert.Equal(t, "user", current["userType"])
	user := current["user"].(map[string]interface{})
	assert.Equal(t, "bob", user["username"])
	assert.Equal(t, "bob@x.com", user["email"])
	assert.NotContains(t, user, "password")

	_, loggedOut := request(t, app, fiber.MethodPost, "/api/logout", nil, cookie)
	assert.Equal(t, true, loggedOut["success"])

	_, after := request(t, app, fiber.MethodGet, "/api/current-user", nil, cookie)
	assert.Equal(t, false, after["success"])
}

func TestActivityOwnershipComesFromSession(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, app, "Bob", "bob", "bob@x.com", "user")
	cookie := login(t, app, "bob", "secret", "user")

	// Spoofed userId/username in the body must be ignored
	_, payload := request(t, app, fiber.MethodPost, "/api/activities", fiber.Map{
		"activityType": "Run",
		"duration":     30,
		"userId":       "user0",
		"username":     "mallory",
	}, cookie)
	require.Equal(t, true, payload["success"])

	activity := payload["activity"].(map[string]interface{})
	assert.Equal(t, "bob", activity["username"])
	assert.NotEqual(t, "user0", activity["userId"])
	assert.Equal(t, "Run", activity["activityType"])
}

func TestMemberVisibilityAndOwnerSeeAll(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, app, "Bob", "bob", "bob@x.com", "user")
	register(t, app, "Carol", "carol", "carol@x.com", "user")

	bobCookie := login(t, app, "bob", "secret", "user")
	carolCookie := login(t, app, "carol", "secret", "user")

	_, created := request(t, app, fiber.MethodPost, "/api/activities", fiber.Map{
		"activityType": "Run", "duration": 30,
	}, bobCookie)
	require.Equal(t, true, created["success"])
	_, created = request(t, app, fiber.MethodPost, "/api/activities", fiber.Map{
		"activityType": "Yoga", "duration": 45,
	}, carolCookie)
	require.Equal(t, true, created["success"])

	_, bobList := request(t, app, fiber.MethodGet, "/api/activities", nil, bobCookie)
	bobActivities := bobList["activities"].([]interface{})
	require.Len(t, bobActivities, 1)
	assert.Equal(t, "bob", bobActivities[0].(map[string]interface{})["username"])

	ownerCookie := login(t, app, "admin", "admin123", "owner")
	_, ownerList := request(t, app, fiber.MethodGet, "/api/activities", nil, ownerCookie)
	assert.Len(t, ownerList["activities"].([]interface{}), 2)
}

func TestDeleteActivityRules(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, app, "Bob", "bob", "bob@x.com", "user")
	register(t, app, "Carol", "carol", "carol@x.com", "user")

	bobCookie := login(t, app, "bob", "secret", "user")
	carolCookie := login(t, app, "carol", "secret", "user")

	_, created := request(t, app, fiber.MethodPost, "/api/activities", fiber.Map{
		"activityType": "Run", "duration": 30,
	}, bobCookie)
	activityID := created["activity"].(map[string]interface{})["id"].(string)

	resp, _ := request(t, app, fiber.MethodDelete, "/api/activities/"+activityID, nil, carolCookie)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = request(t, app, fiber.MethodDelete, "/api/activities/activity0", nil, bobCookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	ownerCookie := login(t, app, "admin", "admin123", "owner")
	resp, payload := request(t, app, fiber.MethodDelete, "/api/activities/"+activityID, nil, ownerCookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, payload["success"])
}

func TestAdminEndpointsRequireOwnerRole(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, app, "Bob", "bob", "bob@x.com", "user")
	bobCookie := login(t, app, "bob", "secret", "user")

	for _, path := range []string{"/api/users", "/api/stats"} {
		resp, payload := request(t, app, fiber.MethodGet, path, nil, bobCookie)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
		assert.Equal(t, false, payload["success"], path)

		// Anonymous requests get 403 as well, not 401
		resp, _ = request(t, app, fiber.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
	}
}

func TestOwnerStatsAndCascadeScenario(t *testing.T) {
	app, _ := newTestApp(t)

	register(t, app, "Alice", "alice", "alice@x.com", "owner")
	register(t, app, "Bob", "bob", "bob@x.com", "user")

	bobCookie := login(t, app, "bob", "secret", "user")
	_, created := request(t, app, fiber.MethodPost, "/api/activities", fiber.Map{
		"activityType": "Run",
		"duration":     30,
		"date":         time.Now().Format(time.RFC3339),
	}, bobCookie)
	require.Equal(t, true, created["success"])

	aliceCookie := login(t, app, "alice", "secret", "owner")

	_, statsPayload := request(t, app, fiber.MethodGet, "/api/stats", nil, aliceCookie)
	require.Equal(t, true, statsPayload["success"])
	stats := statsPayload["stats"].(map[string]interface{})
	assert.EqualValues(t, 1, stats["totalUsers"])
	assert.EqualValues(t, 1, stats["totalActivities"])
	assert.EqualValues(t, 1, stats["activitiesToday"])
	assert.EqualValues(t, 1, stats["activitiesThisWeek"])

	// Find bob's id through the member list
	_, usersPayload := request(t, app, fiber.MethodGet, "/api/users", nil, aliceCookie)
	users := usersPayload["users"].([]interface{})
	require.Len(t, users, 1)
	bobID := users[0].(map[string]interface{})["id"].(string)

	resp, _ := request(t, app, fiber.MethodDelete, "/api/users/"+bobID, nil, aliceCookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Cascade: no activities remain
	_, activities := request(t, app, fiber.MethodGet, "/api/activities", nil, aliceCookie)
	assert.Empty(t, activities["activities"])

	// Bob's session now resolves to anonymous
	_, current := request(t, app, fiber.MethodGet, "/api/current-user", nil, bobCookie)
	assert.Equal(t, false, current["success"])

	resp, _ = request(t, app, fiber.MethodDelete, "/api/users/"+bobID, nil, aliceCookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)

	resp, payload := request(t, app, fiber.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", payload["status"])
	assert.Equal(t, "ok", payload["db"])
}
