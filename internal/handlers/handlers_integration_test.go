package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"storefront/internal/catalog"
	"storefront/internal/handlers"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// setupApp sets up a Fiber app for testing over in-memory storage with all
// handlers and services wired.
func setupApp() *fiber.App {
	store := storage.NewMemoryStore()

	userStore := repositories.NewStorageUserStore(store)
	supportLog := repositories.NewStorageSupportLog(store)
	reviewLog := repositories.NewStorageReviewLog(store)

	cat := catalog.New()
	authService := services.NewAuthService(userStore)
	actionService := services.NewActionService(userStore, cat, nil) // nil MQ client
	viewService := services.NewViewService(userStore, reviewLog, cat)
	feedbackService := services.NewFeedbackService(supportLog, reviewLog, nil)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
	handlers.NewStoreHandler(actionService, viewService).RegisterRoutes(apiV1)
	handlers.NewFeedbackHandler(feedbackService, viewService).RegisterRoutes(apiV1)

	return app
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

// doJSON issues a JSON request against the test app and decodes the
// response body into a map.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	var decoded map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("failed to decode response %s: %v", raw, err)
		}
	}
	return resp.StatusCode, decoded
}

func register(t *testing.T, app *fiber.App, email string) (int, map[string]interface{}) {
	return doJSON(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     "Test User",
		"email":    email,
		"phone":    "1234567890",
		"password": "password123",
		"confirm":  "password123",
	})
}

func login(t *testing.T, app *fiber.App, email, password string) (int, map[string]interface{}) {
	return doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func TestRegisterValidationAndDuplicates(t *testing.T) {
	app := setupApp()

	// Each invalid form reports exactly one message.
	status, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name": "ab", "email": "a@b.c", "phone": "1234567890",
		"password": "password123", "confirm": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Name must be at least 3 chars", body["error"])

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name": "Test User", "email": "not-an-email", "phone": "1234567890",
		"password": "password123", "confirm": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid email", body["error"])

	// Valid registration succeeds and points at the login view.
	status, body = register(t, app, "test@example.com")
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "/login", body["redirect"])

	// Re-registering with a case-differing email is a conflict.
	status, body = register(t, app, "TEST@Example.com")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Email already registered", body["error"])
}

func TestLoginGenericFailure(t *testing.T) {
	app := setupApp()
	register(t, app, "test@example.com")

	// Wrong password and unknown email produce the identical message.
	status, wrongPass := login(t, app, "test@example.com", "wrongpassword")
	assert.Equal(t, http.StatusUnauthorized, status)
	status, unknown := login(t, app, "nobody@example.com", "password123")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, wrongPass["message"], unknown["message"])

	status, body := login(t, app, "test@example.com", "password123")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "/", body["redirect"])
}

func TestActionsRequireSession(t *testing.T) {
	app := setupApp()

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/wishlist/p1", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "/login", body["redirect"])

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/orders/p1", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "/login", body["redirect"])

	// The views report the no-session state rather than failing.
	status, body = doJSON(t, app, http.MethodGet, "/api/v1/wishlist", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, services.MsgWishlistNoSession, body["message"])
}

func TestWishlistAndOrdersFlow(t *testing.T) {
	app := setupApp()
	register(t, app, "test@example.com")
	login(t, app, "test@example.com", "password123")

	// Adding the same product twice keeps a single entry.
	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/wishlist/p1", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/wishlist/p1", nil)
	assert.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, app, http.MethodGet, "/api/v1/wishlist", nil)
	assert.Equal(t, http.StatusOK, status)
	items := body["items"].([]interface{})
	assert.Len(t, items, 1)

	// Unknown products cannot be bought.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/orders/p99", nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Two buys yield two orders with distinct ids.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/orders/p1", nil)
	assert.Equal(t, http.StatusCreated, status)
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/orders/p2", nil)
	assert.Equal(t, http.StatusCreated, status)

	status, body = doJSON(t, app, http.MethodGet, "/api/v1/orders", nil)
	assert.Equal(t, http.StatusOK, status)
	orders := body["items"].([]interface{})
	assert.Len(t, orders, 2)
	first := orders[0].(map[string]interface{})
	second := orders[1].(map[string]interface{})
	assert.NotEqual(t, first["orderId"], second["orderId"])
}

func TestReviewSubmitAndList(t *testing.T) {
	app := setupApp()

	status, body := doJSON(t, app, http.MethodGet, "/api/v1/reviews", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, services.MsgReviewsEmpty, body["message"])

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/reviews", map[string]string{
		"productId": "p1",
		"review":    "Great sound",
	})
	assert.Equal(t, http.StatusCreated, status)

	// Submit responds with the refreshed reviews view.
	refreshed := body["reviews"].(map[string]interface{})
	assert.Len(t, refreshed["items"].([]interface{}), 1)

	status, body = doJSON(t, app, http.MethodGet, "/api/v1/reviews", nil)
	assert.Equal(t, http.StatusOK, status)
	listed := body["items"].([]interface{})
	assert.Len(t, listed, 1)
	entry := listed[0].(map[string]interface{})
	assert.Equal(t, "p1", entry["productId"])
	assert.Equal(t, "Great sound", entry["review"])
}

func TestSupportSubmit(t *testing.T) {
	app := setupApp()

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/support", map[string]string{
		"email": "user@example.com",
		"msg":   "My order never arrived",
	})
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Support request submitted", body["message"])
}
