package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SONUshilla/CartBackend/internal/domain"
	"github.com/SONUshilla/CartBackend/internal/repository"
	apperrors "github.com/SONUshilla/CartBackend/pkg/errors"
)

// CartService implements the persisted cart business logic.
type CartService struct {
	repo   repository.CartRepository
	logger *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, logger *slog.Logger) *CartService {
	return &CartService{
		repo:   repo,
		logger: logger,
	}
}

// AddItemInput holds the parameters for adding a product to the cart.
type AddItemInput struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// AddItem adds a product to the user's cart, merging with any existing line
// for the same product.
func (s *CartService) AddItem(ctx context.Context, userID string, input AddItemInput) error {
	if userID == "" {
		return apperrors.Unauthorized("authentication required")
	}
	if input.ProductID == "" {
		return apperrors.InvalidInput("product_id is required")
	}
	if input.Name == "" {
		return apperrors.InvalidInput("name is required")
	}
	if input.Price < 0 {
		return apperrors.InvalidInput("price must not be negative")
	}
	if input.Quantity < 1 {
		return apperrors.InvalidInput("quantity must be at least 1")
	}

	item := &domain.CartItem{
		UserID:    userID,
		ProductID: input.ProductID,
		Name:      input.Name,
		ImageURL:  input.ImageURL,
		Price:     input.Price,
		Quantity:  input.Quantity,
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}

	s.logger.DebugContext(ctx, "cart item added",
		slog.String("user_id", userID),
		slog.String("product_id", input.ProductID),
		slog.Int("quantity", input.Quantity),
	)

	return nil
}

// GetCart returns the user's cart contents.
func (s *CartService) GetCart(ctx context.Context, userID string) ([]domain.CartItem, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return items, nil
}

// RemoveItem deletes one product from the user's cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return apperrors.Unauthorized("authentication required")
	}
	if productID == "" {
		return apperrors.InvalidInput("product_id is required")
	}
	if err := s.repo.Remove(ctx, userID, productID); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}
