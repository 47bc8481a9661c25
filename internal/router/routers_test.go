package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/khmer25/shop-api/config"
	"github.com/khmer25/shop-api/internal/handler"
	"github.com/khmer25/shop-api/internal/middleware"
	"github.com/khmer25/shop-api/internal/model"
	"github.com/khmer25/shop-api/internal/service"
	"github.com/khmer25/shop-api/pkg/health"
	"github.com/khmer25/shop-api/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memStore backs the user and token store contracts so the full route
// table can be exercised without a database. Catalog and commerce
// requests in these tests fail at binding or path parsing, before any
// repository runs.
type memStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*model.User
	tokens map[string]*model.AuthToken
}

func newMemStore() *memStore {
	return &memStore{
		nextID: 1,
		users:  make(map[uint]*model.User),
		tokens: make(map[string]*model.AuthToken),
	}
}

func (s *memStore) GetByID(_ context.Context, id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memStore) GetByPhone(_ context.Context, phone string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Phone == phone {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStore) PhoneExists(_ context.Context, phone string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.nextID
	s.nextID++
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memStore) GetByKey(_ context.Context, key string) (*model.AuthToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *token
	if user, ok := s.users[token.UserID]; ok {
		copied.User = *user
	}
	return &copied, nil
}

func (s *memStore) Insert(_ context.Context, token *model.AuthToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *token
	s.tokens[token.Key] = &copied
	return nil
}

func (s *memStore) Replace(_ context.Context, userID uint, token *model.AuthToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, existing := range s.tokens {
		if existing.UserID == userID {
			delete(s.tokens, key)
		}
	}
	copied := *token
	s.tokens[token.Key] = &copied
	return nil
}

func setupEngine(t *testing.T, rateLimit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.RegisterCustomValidators())

	store := newMemStore()
	tokenService := service.NewTokenService(store, 0)
	userService := service.NewUserService(store, tokenService, nil)
	catalogService := service.NewCatalogService(nil, nil, nil, nil, nil, 0)
	commerceService := service.NewCommerceService(nil, nil, nil, nil, nil)

	cfg := &config.Config{
		App:       config.AppConfig{Environment: "development"},
		RateLimit: config.RateLimitConfig{Request: rateLimit, Duration: 60},
	}

	r := NewRouter(
		handler.NewAuthHandler(userService),
		handler.NewUserHandler(userService),
		handler.NewCategoryHandler(catalogService),
		handler.NewSupplierHandler(catalogService),
		handler.NewProductHandler(catalogService),
		handler.NewBannerHandler(catalogService),
		handler.NewCartHandler(commerceService),
		handler.NewOrderHandler(commerceService),
		handler.NewHealthHandler(health.NewMonitor(time.Minute, nil)),
		middleware.NewAuthMiddleware(tokenService),
		cfg,
	)
	return r.SetupRoutes()
}

func request(engine *gin.Engine, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func registerAndGetToken(t *testing.T, engine *gin.Engine) string {
	t.Helper()
	w := request(engine, http.MethodPost, "/api/register", gin.H{
		"name": "Sokha", "phone": "+85512000001", "password": "secret123",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

// Only product writes require a token; every other surface answers an
// anonymous request on its own terms. Requests here carry bodies or path
// ids that fail validation, so an open route answers 400, never 401.
func TestRoutePolicyOpenSurfaces(t *testing.T) {
	engine := setupEngine(t, 100)

	cases := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPost, "/api/categories", gin.H{}},
		{http.MethodPut, "/api/categories/abc", gin.H{}},
		{http.MethodDelete, "/api/categories/abc", nil},
		{http.MethodPost, "/api/suppliers", gin.H{}},
		{http.MethodPut, "/api/suppliers/abc", gin.H{}},
		{http.MethodDelete, "/api/suppliers/abc", nil},
		{http.MethodPost, "/api/banners", gin.H{}},
		{http.MethodPut, "/api/banners/abc", gin.H{}},
		{http.MethodDelete, "/api/banners/abc", nil},
		{http.MethodPost, "/api/carts", gin.H{}},
		{http.MethodPut, "/api/carts/abc", gin.H{}},
		{http.MethodDelete, "/api/carts/abc", nil},
		{http.MethodPost, "/api/orders", gin.H{}},
		{http.MethodGet, "/api/orders/abc", nil},
		{http.MethodPut, "/api/orders/abc", gin.H{}},
		{http.MethodDelete, "/api/orders/abc", nil},
		{http.MethodGet, "/api/order-items/abc", nil},
		{http.MethodDelete, "/api/order-items/abc", nil},
		{http.MethodGet, "/api/products/abc", nil},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := request(engine, tc.method, tc.path, tc.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code,
				"anonymous %s %s should reach the handler, body: %s", tc.method, tc.path, w.Body.String())
		})
	}
}

func TestRoutePolicyProductWritesRequireToken(t *testing.T) {
	engine := setupEngine(t, 100)

	writes := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPost, "/api/products", gin.H{}},
		{http.MethodPut, "/api/products/abc", gin.H{}},
		{http.MethodDelete, "/api/products/abc", nil},
	}
	for _, tc := range writes {
		t.Run("anonymous "+tc.method, func(t *testing.T) {
			w := request(engine, tc.method, tc.path, tc.body, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"detail":"Unauthorized"}`, w.Body.String())
		})
	}

	token := registerAndGetToken(t, engine)
	auth := map[string]string{"Authorization": "Bearer " + token}
	for _, tc := range writes {
		t.Run("authenticated "+tc.method, func(t *testing.T) {
			// Past the authenticator, the invalid body or id fails
			// validation: 400 proves the token was accepted.
			w := request(engine, tc.method, tc.path, tc.body, auth)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

// The rate limiter covers register and login only; the public read
// surface stays unthrottled.
func TestRateLimitScopedToCredentialEndpoints(t *testing.T) {
	engine := setupEngine(t, 3)

	for i := 0; i < 3; i++ {
		w := request(engine, http.MethodPost, "/api/login", gin.H{}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "request %d should pass the limiter", i+1)
	}
	w := request(engine, http.MethodPost, "/api/login", gin.H{}, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Same IP, public endpoint: never throttled.
	for i := 0; i < 10; i++ {
		w := request(engine, http.MethodGet, "/api/user?id=abc", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "public read %d throttled", i+1)
	}
}
