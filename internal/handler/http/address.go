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

// AddressHandler handles the address book endpoints.
type AddressHandler struct {
	service *service.AddressService
	logger  *slog.Logger
}

// NewAddressHandler creates a new address HTTP handler.
func NewAddressHandler(svc *service.AddressService, logger *slog.Logger) *AddressHandler {
	return &AddressHandler{
		service: svc,
		logger:  logger,
	}
}

// AddAddressRequest is the JSON request body for POST /addAddress.
type AddAddressRequest struct {
	Label        string `json:"label"`
	FullName     string `json:"fullName" validate:"required"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state"`
	Zip          string `json:"zip" validate:"required"`
	IsDefault    bool   `json:"isDefault"`
}

// UpdateAddressRequest is the JSON request body for POST /updateAddress.
// Only non-empty fields are applied.
type UpdateAddressRequest struct {
	ID           string `json:"id" validate:"required"`
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

// DeleteAddressRequest is the JSON request body for POST /deleteAddress.
type DeleteAddressRequest struct {
	ID string `json:"id" validate:"required"`
}

// GetAddresses handles GET /getAddresses
func (h *AddressHandler) GetAddresses(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	addresses, err := h.service.ListAddresses(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, addresses)
}

// AddAddress handles POST /addAddress
func (h *AddressHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	var req AddAddressRequest
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
	address, err := h.service.AddAddress(r.Context(), userID, CheckoutAddressRequest{
		Label:        req.Label,
		FullName:     req.FullName,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Zip:          req.Zip,
		IsDefault:    req.IsDefault,
	}.toInput())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "address added",
		"address": address,
	})
}

// UpdateAddress handles POST /updateAddress
func (h *AddressHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	var req UpdateAddressRequest
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
	address, err := h.service.UpdateAddress(r.Context(), userID, req.ID, CheckoutAddressRequest{
		Label:        req.Label,
		FullName:     req.FullName,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Zip:          req.Zip,
		IsDefault:    req.IsDefault,
	}.toInput())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "address updated",
		"address": address,
	})
}

// DeleteAddress handles POST /deleteAddress
func (h *AddressHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	var req DeleteAddressRequest
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
	address, err := h.service.DeleteAddress(r.Context(), userID, req.ID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "address deleted",
		"address": address,
	})
}
