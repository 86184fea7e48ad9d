package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/SONUshilla/CartBackend/internal/service"
	"github.com/SONUshilla/CartBackend/pkg/httputil"
	"github.com/SONUshilla/CartBackend/pkg/middleware"
	"github.com/SONUshilla/CartBackend/pkg/validator"
)

// CartHandler handles the persisted cart endpoints.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		logger:  logger,
	}
}

// AddToCartRequest is the JSON request body for POST /cart.
type AddToCartRequest struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Image    string `json:"image"`
	Price    int64  `json:"price" validate:"gte=0"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
}

// RemoveFromCartRequest is the JSON request body for POST /cart/delete.
type RemoveFromCartRequest struct {
	ID string `json:"id" validate:"required"`
}

// AddToCart handles POST /cart
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorEnvelope{
			Error: httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	err := h.service.AddItem(r.Context(), userID, service.AddItemInput{
		ProductID: req.ID,
		Name:      req.Name,
		ImageURL:  req.Image,
		Price:     req.Price,
		Quantity:  req.Quantity,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "item added to cart"})
}

// GetCart handles GET /getCart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	items, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

// RemoveFromCart handles POST /cart/delete
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var req RemoveFromCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorEnvelope{
			Error: httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	if err := h.service.RemoveItem(r.Context(), userID, req.ID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "item removed from cart"})
}
