package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/admin"
	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/auth"
	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/domain"
	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/service"
	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/storage/memory"
	"github.com/Emmanation-Designs/Gibsons-Collections3/pkg/httputil"
	"github.com/Emmanation-Designs/Gibsons-Collections3/pkg/middleware"
)

// ============================================================================
// Mock ProductRepository
// ============================================================================

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) Update(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ============================================================================
// Mock StateRepository
// ============================================================================

type mockStateRepository struct {
	mock.Mock
}

func (m *mockStateRepository) Get(ctx context.Context, clientID string) (*domain.ClientState, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientState), args.Error(1)
}

func (m *mockStateRepository) Save(ctx context.Context, clientID string, state *domain.ClientState) error {
	args := m.Called(ctx, clientID, state)
	return args.Error(0)
}

func (m *mockStateRepository) Delete(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

// ============================================================================
// Mock UserRepository
// ============================================================================

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// ============================================================================
// Mock RefreshTokenRepository
// ============================================================================

type mockRefreshTokenRepository struct {
	mock.Mock
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *mockRefreshTokenRepository) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshToken), args.Error(1)
}

func (m *mockRefreshTokenRepository) RevokeByUserID(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

// ============================================================================
// No-op event publisher
// ============================================================================

type noopPublisher struct{}

func (noopPublisher) PublishProductCreated(context.Context, *domain.Product) error { return nil }
func (noopPublisher) PublishProductUpdated(context.Context, *domain.Product) error { return nil }
func (noopPublisher) PublishProductDeleted(context.Context, string) error          { return nil }
func (noopPublisher) PublishOrderSubmitted(context.Context, string, *domain.Order, []domain.CartItem) error {
	return nil
}

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testJWTManager() *auth.JWTManager {
	return auth.NewJWTManager("test-secret-test-secret-test-secret", 15*time.Minute, 7*24*time.Hour)
}

func testAllowlist() *admin.Allowlist {
	return admin.NewAllowlist([]string{"gibsoncollections1@gmail.com", "gibsoncollections2@gmail.com"})
}

// bearerToken mints an access token the production Auth middleware accepts.
func bearerToken(t *testing.T, jwt *auth.JWTManager, userID, email string) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(userID, email)
	require.NoError(t, err)
	return "Bearer " + token
}

func tokenValidator(jwt *auth.JWTManager) middleware.TokenValidator {
	return func(token string) (*middleware.Claims, error) {
		claims, err := jwt.ValidateAccessToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{UserID: claims.UserID, Email: claims.Email}, nil
	}
}

func testCatalogService(repo *mockProductRepository) *service.CatalogService {
	return service.NewCatalogService(repo, memory.New("http://localhost:8080"), noopPublisher{}, testLogger())
}

func testStateService(states *mockStateRepository, products *mockProductRepository) *service.StateService {
	return service.NewStateService(states, products, testLogger())
}

// setupStateRouter mirrors the production layout for the per-client routes.
func setupStateRouter(handler *StateHandler, checkoutHandler *CheckoutHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(ClientID)

		r.Get("/api/v1/state", handler.GetState)

		r.Delete("/api/v1/cart", handler.ClearCart)
		r.Post("/api/v1/cart/items", handler.AddItem)
		r.Put("/api/v1/cart/items/{productId}", handler.UpdateItemQuantity)
		r.Delete("/api/v1/cart/items/{productId}", handler.RemoveItem)

		r.Get("/api/v1/wishlist", handler.GetWishlist)
		r.Post("/api/v1/wishlist/{productId}/toggle", handler.ToggleWishlist)

		if checkoutHandler != nil {
			r.Post("/api/v1/checkout", checkoutHandler.Checkout)
		}
	})
	return r
}

// setupCatalogRouter mirrors the production layout for catalog routes,
// including the admin gate.
func setupCatalogRouter(handler *ProductHandler, jwt *auth.JWTManager) *chi.Mux {
	r := chi.NewRouter()

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", handler.ListProducts)
		r.Get("/{id}", handler.GetProduct)
	})
	r.Get("/api/v1/categories", handler.ListCategories)

	r.Route("/api/v1/admin/products", func(r chi.Router) {
		r.Use(middleware.Auth(tokenValidator(jwt)))
		r.Use(RequireAdmin(testAllowlist()))

		r.Post("/", handler.CreateProduct)
		r.Put("/{id}", handler.UpdateProduct)
		r.Delete("/{id}", handler.DeleteProduct)
	})

	return r
}

// decodeResponse reads the response body into the standard Response struct.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}
