package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SONUshilla/CartBackend/internal/domain"
	"github.com/SONUshilla/CartBackend/internal/service"
)

// --- Mocks ---

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Upsert(ctx context.Context, item *domain.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockCartRepository) List(ctx context.Context, userID string) ([]domain.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartItem), args.Error(1)
}

func (m *mockCartRepository) Remove(ctx context.Context, userID, productID string) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

// --- Test Helpers ---

func setupCartRouter(repo *mockCartRepository) *chi.Mux {
	handler := NewCartHandler(service.NewCartService(repo, testLogger()), testLogger())
	r := chi.NewRouter()
	r.Use(ContentTypeJSON)
	r.Post("/cart", handler.AddToCart)
	r.Get("/getCart", handler.GetCart)
	r.Post("/cart/delete", handler.RemoveFromCart)
	return r
}

// --- Tests ---

func TestAddToCart_Success(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupCartRouter(repo)

	repo.On("Upsert", mock.Anything, &domain.CartItem{
		UserID:    "user-1",
		ProductID: "prod-1",
		Name:      "Mechanical Keyboard",
		ImageURL:  "https://cdn.example.com/kb.png",
		Price:     7999,
		Quantity:  2,
	}).Return(nil)

	body, _ := json.Marshal(AddToCartRequest{
		ID:       "prod-1",
		Name:     "Mechanical Keyboard",
		Image:    "https://cdn.example.com/kb.png",
		Price:    7999,
		Quantity: 2,
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/cart", body, "user-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestAddToCart_ZeroQuantity(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupCartRouter(repo)

	body, _ := json.Marshal(AddToCartRequest{ID: "prod-1", Name: "Mechanical Keyboard", Price: 7999})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/cart", body, "user-1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "Upsert")
}

func TestAddToCart_WrongContentType(t *testing.T) {
	router := setupCartRouter(new(mockCartRepository))

	req := httptest.NewRequest(http.MethodPost, "/cart", nil)
	req.Header.Set("Content-Type", "text/plain")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestGetCart_ReturnsItems(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupCartRouter(repo)

	repo.On("List", mock.Anything, "user-1").Return([]domain.CartItem{
		{UserID: "user-1", ProductID: "prod-1", Name: "Mechanical Keyboard", Price: 7999, Quantity: 2},
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/getCart", nil, "user-1"))

	assert.Equal(t, http.StatusOK, rec.Code)

	var items []domain.CartItem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "prod-1", items[0].ProductID)
}

func TestRemoveFromCart_Success(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupCartRouter(repo)

	repo.On("Remove", mock.Anything, "user-1", "prod-1").Return(nil)

	body, _ := json.Marshal(RemoveFromCartRequest{ID: "prod-1"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/cart/delete", body, "user-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}
