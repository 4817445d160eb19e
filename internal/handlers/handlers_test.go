package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/playmart/internal/cart"
	"github.com/example/playmart/internal/catalog"
	"github.com/example/playmart/internal/config"
	"github.com/example/playmart/internal/middleware"
	"github.com/example/playmart/internal/notify"
	"github.com/example/playmart/internal/rewards"
	"github.com/example/playmart/internal/utils"
)

// testApp exercises the HTTP surface with the auth middleware swapped
// for a stub that trusts the fixed test user.
func testApp(t *testing.T) (*fiber.App, uuid.UUID) {
	t.Helper()

	cat := catalog.Default(time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local))
	feed := notify.NewFeed()
	carts := cart.NewStore()
	svc := rewards.NewService(rewards.Config{QuestionTime: time.Hour}, rewards.NewMemoryStorage(), feed, cat, carts,
		rewards.WithClock(func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local) }))

	cartHandler := NewCartHandler(carts, cat)
	catalogHandler := NewCatalogHandler(cat)
	rewardsHandler := NewRewardsHandler(svc, feed)

	userID := uuid.New()
	app := fiber.New()
	api := app.Group("/api")

	api.Get("/products", catalogHandler.ListProducts)
	api.Get("/products/quick-delivery", catalogHandler.ListQuickDelivery)
	api.Get("/products/:id", catalogHandler.GetProduct)
	api.Get("/flash-sales", rewardsHandler.ListFlashSales)

	protected := api.Group("", func(c *fiber.Ctx) error {
		middleware.SetCurrentUserID(c, userID)
		return c.Next()
	})
	protected.Get("/cart", cartHandler.GetCart)
	protected.Get("/cart/summary", cartHandler.GetSummary)
	protected.Post("/cart/items", cartHandler.AddItem)
	protected.Put("/cart/items/:id", cartHandler.UpdateQuantity)
	protected.Delete("/cart/items/:id", cartHandler.RemoveItem)
	protected.Delete("/cart", cartHandler.ClearCart)
	protected.Get("/rewards/progress", rewardsHandler.GetProgress)
	protected.Post("/rewards/quiz/start", rewardsHandler.StartQuiz)
	protected.Post("/rewards/spin", rewardsHandler.Spin)
	protected.Post("/flash-sales/:id/claim", rewardsHandler.ClaimFlashSale)
	protected.Get("/notifications", rewardsHandler.ListNotifications)

	return app, userID
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	// error responses carry the default plain-text body
	if !strings.Contains(resp.Header.Get("Content-Type"), "json") {
		return resp, nil
	}

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp, payload
}

func TestCartEndpoints(t *testing.T) {
	app, _ := testApp(t)

	resp, payload := doJSON(t, app, fiber.MethodPost, "/api/cart/items",
		fiber.Map{"product_id": "1", "quantity": 2})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, payload["success"])

	data := payload["data"].(map[string]any)
	lines := data["lines"].([]any)
	require.Len(t, lines, 1)
	assert.Equal(t, float64(2), lines[0].(map[string]any)["quantity"])

	// missing products are rejected before touching the cart
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/cart/items", fiber.Map{"product_id": "ghost"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// dropping the quantity to zero removes the line
	resp, payload = doJSON(t, app, fiber.MethodPut, "/api/cart/items/1", fiber.Map{"quantity": 0})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, payload["data"].(map[string]any)["lines"])

	resp, _ = doJSON(t, app, fiber.MethodPut, "/api/cart/items/1", fiber.Map{"quantity": 3})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCartSummaryEndpoint(t *testing.T) {
	app, _ := testApp(t)

	_, _ = doJSON(t, app, fiber.MethodPost, "/api/cart/items", fiber.Map{"product_id": "1"})

	resp, payload := doJSON(t, app, fiber.MethodGet, "/api/cart/summary", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := payload["data"].(map[string]any)
	assert.Greater(t, data["total"], data["subtotal"])
}

func TestQuizStartEndpoint(t *testing.T) {
	app, _ := testApp(t)

	resp, payload := doJSON(t, app, fiber.MethodPost, "/api/rewards/quiz/start", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := payload["data"].(map[string]any)
	assert.Equal(t, "in_progress", data["status"])

	// a second start while the first is live is a conflict
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/rewards/quiz/start", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestSpinEndpointEnforcesDailyCap(t *testing.T) {
	app, _ := testApp(t)

	resp, payload := doJSON(t, app, fiber.MethodPost, "/api/rewards/spin", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := payload["data"].(map[string]any)
	assert.NotEmpty(t, data["reward"].(map[string]any)["id"])

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/rewards/spin", nil)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestFlashSaleClaimEndpoint(t *testing.T) {
	app, _ := testApp(t)

	resp, payload := doJSON(t, app, fiber.MethodPost, "/api/flash-sales/fs1/claim", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, payload["success"])

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/flash-sales/ghost/claim", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// the claimed unit shows up in the cart and on the feed
	_, payload = doJSON(t, app, fiber.MethodGet, "/api/cart", nil)
	require.Len(t, payload["data"].(map[string]any)["lines"], 1)

	_, payload = doJSON(t, app, fiber.MethodGet, "/api/notifications", nil)
	assert.NotEmpty(t, payload["data"])
}

func TestCatalogEndpoints(t *testing.T) {
	app, _ := testApp(t)

	resp, payload := doJSON(t, app, fiber.MethodGet, "/api/products?category=Electronics", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	for _, item := range payload["data"].([]any) {
		assert.Equal(t, "Electronics", item.(map[string]any)["category"])
	}

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/products/1", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/products/ghost", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, payload = doJSON(t, app, fiber.MethodGet, "/api/flash-sales", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, payload["data"].([]any), 3)
}

func TestOrderNumberIsStableAndCollisionFree(t *testing.T) {
	id := uuid.New()

	num := orderNumber(id)
	assert.True(t, strings.HasPrefix(num, "#"))
	assert.Len(t, num, 33)
	assert.Equal(t, num, orderNumber(id))
	assert.NotEqual(t, num, orderNumber(uuid.New()))
}

func TestAuthMiddlewareOverHTTP(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	userID := uuid.New()

	token, err := utils.GenerateToken(cfg.JWTSecret, userID, time.Hour)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/whoami", middleware.AuthMiddleware(cfg), func(c *fiber.Ctx) error {
		id, ok := middleware.GetCurrentUserID(c)
		if !ok {
			return fiber.NewError(fiber.StatusInternalServerError, "no user in context")
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"id": id.String()}})
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic abc123", fiber.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", fiber.StatusUnauthorized},
		{"wrong secret", "", fiber.StatusUnauthorized},
		{"valid token", "Bearer " + token, fiber.StatusOK},
	}

	forged, err := utils.GenerateToken("other-secret", userID, time.Hour)
	require.NoError(t, err)
	tests[3].header = "Bearer " + forged

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)

			if tt.want == fiber.StatusOK {
				var payload map[string]any
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
				assert.Equal(t, userID.String(), payload["data"].(map[string]any)["id"])
			}
		})
	}
}
