package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SONUshilla/CartBackend/internal/domain"
	"github.com/SONUshilla/CartBackend/internal/service"
	"github.com/SONUshilla/CartBackend/pkg/httputil"
	"github.com/SONUshilla/CartBackend/pkg/middleware"
	"github.com/SONUshilla/CartBackend/pkg/validator"
)

// OrderHandler handles checkout and order history endpoints.
type OrderHandler struct {
	checkout *service.CheckoutService
	orders   *service.OrderService
	logger   *slog.Logger
}

// NewOrderHandler creates a new order HTTP handler.
func NewOrderHandler(checkout *service.CheckoutService, orders *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		checkout: checkout,
		orders:   orders,
		logger:   logger,
	}
}

// --- Request DTOs (field names follow the published client contract) ---

// CheckoutItemRequest is one submitted cart line.
type CheckoutItemRequest struct {
	ID       string `json:"id" validate:"required"`
	Price    int64  `json:"price" validate:"required,gt=0"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
}

// CheckoutAddressRequest is the submitted shipping address: either a
// reference to a saved address (id) or the fields for a new one.
type CheckoutAddressRequest struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	IsDefault    bool   `json:"isDefault"`
}

func (a CheckoutAddressRequest) toInput() domain.AddressInput {
	return domain.AddressInput{
		ID:           a.ID,
		Label:        a.Label,
		FullName:     a.FullName,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.Zip,
		IsDefault:    a.IsDefault,
	}
}

// CheckoutRequest is the JSON request body for POST /checkout.
type CheckoutRequest struct {
	CartItems     []CheckoutItemRequest  `json:"cartItems" validate:"required,min=1,dive"`
	Address       CheckoutAddressRequest `json:"address"`
	PaymentMethod string                 `json:"paymentMethod"`
}

// --- Handlers ---

// Checkout handles POST /checkout
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CheckoutRequest
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

	items := make([]service.CheckoutItemInput, len(req.CartItems))
	for i, item := range req.CartItems {
		items[i] = service.CheckoutItemInput{
			ProductID: item.ID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	userID := middleware.UserIDFromContext(r.Context())
	orderID, err := h.checkout.PlaceOrder(r.Context(), userID, service.CheckoutInput{
		Items:         items,
		Address:       req.Address.toInput(),
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "order placed successfully",
		"orderId": orderID,
	})
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	orders, err := h.orders.ListOrders(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, orders)
}

// GetOrder handles GET /orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	orderID := chi.URLParam(r, "id")

	order, address, err := h.orders.GetOrder(r.Context(), userID, orderID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"order":            order,
		"shipping_address": address,
	})
}

// CancelOrder handles PATCH /orders/{id}/cancel
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	orderID := chi.URLParam(r, "id")

	order, err := h.orders.CancelOrder(r.Context(), userID, orderID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "order cancelled",
		"order":   order,
	})
}
