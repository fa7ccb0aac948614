package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/ecommerce-shop/internal/checkout"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/order"
)

type CheckoutRequest struct {
	CustomerName  string `json:"customerName" validate:"required"`
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
	SessionID     string `json:"sessionId" validate:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderHandler struct {
	orders   order.Service
	checkout checkout.Service
	validate *validator.Validate
}

func NewOrderHandler(orders order.Service, checkoutSvc checkout.Service) *OrderHandler {
	return &OrderHandler{
		orders:   orders,
		checkout: checkoutSvc,
		validate: validator.New(),
	}
}

func (h *OrderHandler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var requestPayload CheckoutRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode checkout payload")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondValidationError(w, err)
		return
	}

	createdOrder, err := h.checkout.Checkout(r.Context(),
		requestPayload.SessionID,
		requestPayload.CustomerName,
		requestPayload.CustomerEmail,
	)
	if err != nil {
		statusCode := mapErrorToStatusCode(err)
		message := "Failed to checkout"
		if statusCode != http.StatusInternalServerError {
			message = err.Error()
		}
		respondWithError(w, statusCode, message)
		return
	}

	respondWithJSON(w, http.StatusCreated, createdOrder)
}

func (h *OrderHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	orders, err := h.orders.ListOrders(r.Context(), email)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "Failed to list orders")
		return
	}

	respondWithJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	o, err := h.orders.GetOrderByID(r.Context(), id)
	if err != nil {
		statusCode := mapErrorToStatusCode(err)
		message := "Failed to get order"
		if statusCode == http.StatusNotFound {
			message = "Order not found"
		}
		respondWithError(w, statusCode, message)
		return
	}

	respondWithJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	var requestPayload UpdateStatusRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode status payload")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondValidationError(w, err)
		return
	}

	o, err := h.orders.UpdateOrderStatus(r.Context(), id, order.Status(requestPayload.Status))
	if err != nil {
		statusCode := mapErrorToStatusCode(err)
		var message string
		switch {
		case errors.Is(err, order.ErrNotFound):
			message = "Order not found"
		case errors.Is(err, order.ErrInvalidStatus), errors.Is(err, order.ErrInvalidStatusTransition):
			message = err.Error()
		default:
			message = "Failed to update order status"
		}
		respondWithError(w, statusCode, message)
		return
	}

	respondWithJSON(w, http.StatusOK, o)
}
