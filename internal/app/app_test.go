package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/food-order-service/internal/config"
	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/repository"
)

const (
	adminEmail    = "admin1@gmail.com"
	adminPassword = "123456789"
)

type testServer struct {
	t   *testing.T
	app *App
}

func newTestServer(t *testing.T, strategy domain.OrderStrategy) *testServer {
	t.Helper()
	cfg := config.Config{
		App: config.AppConfig{Name: "food-order-service", Version: "test"},
		Auth: config.AuthConfig{
			JWTSecret:           "http-test-secret",
			AccessTokenTTLHours: 1,
			BcryptCost:          bcrypt.MinCost,
			AdminEmail:          adminEmail,
			AdminPassword:       adminPassword,
		},
		Orders:       config.OrdersConfig{Strategy: strategy, PriceSource: domain.PriceSourceClient},
		Notification: config.NotificationConfig{Channel: "orders.feed"},
	}
	application, err := Build(context.Background(), cfg, Infra{Repos: repository.NewMemoryStore().Set()}, nil)
	require.NoError(t, err)
	return &testServer{t: t, app: application}
}

func (s *testServer) do(req *http.Request) (*http.Response, []byte) {
	s.t.Helper()
	resp, err := s.app.Fiber.Test(req, -1)
	require.NoError(s.t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp, body
}

func (s *testServer) json(method, path, token string, payload any) (*http.Response, []byte) {
	s.t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(s.t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.do(req)
}

func (s *testServer) register(email, password string) string {
	s.t.Helper()
	resp, body := s.json(http.MethodPost, "/register", "", map[string]string{
		"firstName":    "Test",
		"lastName":     "User",
		"email":        email,
		"mobileNumber": "0771234567",
		"password":     password,
	})
	require.Equal(s.t, http.StatusCreated, resp.StatusCode, string(body))

	var out struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(s.t, json.Unmarshal(body, &out))
	assert.Equal(s.t, "Bearer "+out.AccessToken, resp.Header.Get("Authorization"))
	return out.AccessToken
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func TestAuthentication_MissingAndInvalidTokens(t *testing.T) {
	s := newTestServer(t, domain.OrderStrategyEmbedded)

	resp, body := s.json(http.MethodGet, "/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	errBody := decode[map[string]any](t, body)
	assert.Equal(t, "UNAUTHORIZED", errBody["error"])
	assert.NotEmpty(t, errBody["message"])

	resp, _ = s.json(http.MethodGet, "/cart", "not.a.jwt", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Basic abc")
	resp, _ = s.do(req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t, domain.OrderStrategyEmbedded)
	s.register("ada@example.com", "secret1")

	resp, body := s.json(http.MethodPost, "/register", "", map[string]string{
		"firstName": "Ada", "lastName": "L", "email": "ada@example.com", "mobileNumber": "1", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Email already in use.", decode[map[string]any](t, body)["message"])

	resp, body = s.json(http.MethodPost, "/register", "", map[string]string{"email": "bad"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	details := decode[map[string]any](t, body)["details"].(map[string]any)
	assert.Contains(t, details, "firstName")
	assert.Contains(t, details, "password")

	resp, body = s.json(http.MethodPost, "/login", "", map[string]string{"email": "ada@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	login := decode[struct {
		Message     string `json:"message"`
		AccessToken string `json:"accessToken"`
		User        struct {
			Email   string `json:"email"`
			UserID  string `json:"userId"`
			IsAdmin *bool  `json:"isAdmin"`
		} `json:"user"`
	}](t, body)
	assert.Equal(t, "Login successful!", login.Message)
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, "ada@example.com", login.User.Email)
	require.NotNil(t, login.User.IsAdmin)
	assert.False(t, *login.User.IsAdmin)

	claims, err := s.app.Auth.TokenManager().Parse(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, login.User.UserID, claims.UserID)

	resp, _ = s.json(http.MethodPost, "/login", "", map[string]string{"email": "ada@example.com", "password": "wrong1"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.json(http.MethodPost, "/login", "", map[string]string{"email": "ada@example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEmbeddedCartFlow(t *testing.T) {
	s := newTestServer(t, domain.OrderStrategyEmbedded)
	token := s.register("cart@example.com", "secret1")

	resp, body := s.json(http.MethodPost, "/orders", token, map[string]any{
		"orderData": map[string]any{"title": "Pizza", "price": 830, "image": "images/foods/pizza.jpg", "type": "Food"},
		"quantity":  "2",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	added := decode[struct {
		Message string          `json:"message"`
		Line    domain.CartLine `json:"line"`
	}](t, body)
	assert.Equal(t, "Item added to cart successfully!", added.Message)
	assert.Equal(t, 2, added.Line.Quantity)
	assert.Equal(t, domain.DefaultItemStatus, added.Line.Item.Status)

	resp, body = s.json(http.MethodPost, "/orders", token, map[string]any{
		"orderData": `{"title":"Sprite","price":145.25,"image":"sprite.jpg","type":"Drinks"}`,
		"quantity":  1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = s.json(http.MethodPost, "/orders", token, map[string]any{
		"orderData": map[string]any{"title": "Pizza", "price": 830, "image": "p.jpg"},
		"quantity":  0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid item data or quantity", decode[map[string]any](t, body)["message"])

	resp, body = s.json(http.MethodGet, "/cart", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	lines := decode[[]domain.CartLine](t, body)
	require.Len(t, lines, 2)
	assert.Equal(t, added.Line.ID, lines[0].ID)

	resp, body = s.json(http.MethodDelete, "/cart/"+added.Line.ID.Hex(), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Item removed from cart successfully", decode[map[string]any](t, body)["message"])

	resp, _ = s.json(http.MethodDelete, "/cart/unknown-line", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = s.json(http.MethodGet, "/cart", token, nil)
	lines = decode[[]domain.CartLine](t, body)
	require.Len(t, lines, 1)
	assert.Equal(t, "Sprite", lines[0].Item.Title)
}

func TestEmbeddedMultipartAdd(t *testing.T) {
	s := newTestServer(t, domain.OrderStrategyEmbedded)
	token := s.register("multipart@example.com", "secret1")

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("title", "Fries"))
	require.NoError(t, form.WriteField("price", "207.5"))
	require.NoError(t, form.WriteField("type", "Snacks"))
	require.NoError(t, form.WriteField("quantity", "3"))
	part, err := form.CreateFormFile("image", "fries.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/orders", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, body := s.do(req)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	added := decode[struct {
		Line domain.CartLine `json:"line"`
	}](t, body)
	assert.Equal(t, "fries.jpg", added.Line.Item.Image)
	assert.Equal(t, 207.5, added.Line.Item.Price)
	assert.Equal(t, 3, added.Line.Quantity)
}

func TestEmbeddedAdminReport(t *testing.T) {
	s := newTestServer(t, domain.OrderStrategyEmbedded)
	userToken := s.register("shopper@example.com", "secret1")
	adminToken := s.register(adminEmail, adminPassword)

	resp, _ := s.json(http.MethodPost, "/orders", userToken, map[string]any{
		"orderData": map[string]any{"title": "Burger", "price": 664, "image": "burger.jpg", "type": "Food"},
		"quantity":  1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := s.json(http.MethodGet, "/orders", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Access denied. Only admins can access all orders.", decode[map[string]any](t, body)["message"])

	resp, body = s.json(http.MethodGet, "/orders", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	report := decode[[]domain.UserCart](t, body)
	require.Len(t, report, 2)
	assert.Equal(t, "Test User", report[0].Name)
	require.Len(t, report[0].Orders, 1)
	assert.Equal(t, "Burger", report[0].Orders[0].Item.Title)
	assert.Empty(t, report[1].Orders)
}

func TestReferencedOrderFlow(t *testing.T) {
	s := newTestServer(t, domain.OrderStrategyReferenced)
	token := s.register("ref@example.com", "secret1")

	claims, err := s.app.Auth.TokenManager().Parse(token)
	require.NoError(t, err)
	assert.Nil(t, claims.IsAdmin)

	resp, body := s.json(http.MethodPost, "/orders", token, map[string]any{
		"items": []map[string]any{
			{"title": "Pasta", "price": 788.5, "image": "pasta.jpg", "type": "Food", "quantity": 2},
			{"title": "Lemonade", "price": "166", "image": "lemonade.jpg", "type": "Drinks"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	placed := decode[struct {
		Message string       `json:"message"`
		Order   domain.Order `json:"order"`
	}](t, body)
	assert.Equal(t, "Order placed successfully!", placed.Message)
	require.Len(t, placed.Order.Items, 2)
	assert.Equal(t, 1, placed.Order.Items[1].Quantity)

	resp, body = s.json(http.MethodPost, "/orders", token, map[string]any{"items": []any{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))

	resp, body = s.json(http.MethodGet, "/orders", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	orders := decode[[]domain.Order](t, body)
	require.Len(t, orders, 1)
	assert.Equal(t, placed.Order.ID, orders[0].ID)

	resp, _ = s.json(http.MethodGet, "/cart", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMenuAndHealth(t *testing.T) {
	s := newTestServer(t, domain.OrderStrategyEmbedded)

	resp, body := s.json(http.MethodGet, "/menu?category=drinks", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := decode[[]domain.MenuItem](t, body)
	require.NotEmpty(t, items)
	for _, item := range items {
		assert.Equal(t, "Drinks", item.Category)
	}

	resp, body = s.json(http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.True(t, strings.Contains(string(body), "in-memory"))

	resp, _ = s.json(http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, body = s.json(http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[map[string]any](t, body)["error"])

	assert.NotEmpty(t, s.app.Metrics.Snapshot().Requests)
}

func TestRegister_MultibytePasswordOverByteLimit(t *testing.T) {
	s := newTestServer(t, domain.OrderStrategyEmbedded)

	resp, body := s.json(http.MethodPost, "/register", "", map[string]string{
		"firstName":    "Zoé",
		"lastName":     "Bérénice",
		"email":        "zoe@example.com",
		"mobileNumber": "1",
		"password":     strings.Repeat("é", 40),
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))
	details := decode[map[string]any](t, body)["details"].(map[string]any)
	assert.Contains(t, details, "password")
}

type failingMenu struct {
	repository.MenuRepository
}

func (failingMenu) SeedIfEmpty(context.Context, []domain.MenuItem) (int, error) {
	return 0, errors.New("server selection error: connection refused")
}

func (failingMenu) List(context.Context, string) ([]domain.MenuItem, error) {
	return nil, errors.New("server selection error: connection refused")
}

func TestBuild_ServesWhenCatalogUnavailable(t *testing.T) {
	repos := repository.NewMemoryStore().Set()
	repos.Menu = failingMenu{MenuRepository: repos.Menu}
	cfg := config.Config{
		App:    config.AppConfig{Name: "food-order-service"},
		Auth:   config.AuthConfig{JWTSecret: "s", AccessTokenTTLHours: 1, BcryptCost: bcrypt.MinCost},
		Orders: config.OrdersConfig{Strategy: domain.OrderStrategyEmbedded, PriceSource: domain.PriceSourceClient},
	}

	application, err := Build(context.Background(), cfg, Infra{Repos: repos}, nil)
	require.NoError(t, err)
	s := &testServer{t: t, app: application}

	resp, _ := s.json(http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.json(http.MethodGet, "/menu", "", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	s.register("still-up@example.com", "secret1")
}
