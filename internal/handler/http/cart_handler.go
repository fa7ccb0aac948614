package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/ecommerce-shop/internal/cart"
)

type AddToCartRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

type CartHandler struct {
	service  cart.Service
	validate *validator.Validate
}

func NewCartHandler(service cart.Service) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *CartHandler) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	if sessionID == "" {
		respondWithError(w, http.StatusBadRequest, "Session id is required")
		return
	}

	productID, err := uuid.FromString(chi.URLParam(r, "productId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var requestPayload AddToCartRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode add-to-cart payload")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondValidationError(w, err)
		return
	}

	item, err := h.service.AddItem(r.Context(), sessionID, productID, requestPayload.Quantity)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, item)
}

func (h *CartHandler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	if sessionID == "" {
		respondWithError(w, http.StatusBadRequest, "Session id is required")
		return
	}

	lines, err := h.service.GetCart(r.Context(), sessionID)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "Failed to load cart")
		return
	}

	respondWithJSON(w, http.StatusOK, lines)
}

func (h *CartHandler) handleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.FromString(chi.URLParam(r, "itemId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	var requestPayload UpdateQuantityRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode quantity payload")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	item, err := h.service.UpdateQuantity(r.Context(), itemID, requestPayload.Quantity)
	if err != nil {
		statusCode := mapErrorToStatusCode(err)
		message := "Failed to update quantity"
		switch statusCode {
		case http.StatusNotFound:
			message = "Cart item not found"
		case http.StatusBadRequest:
			message = err.Error()
		}
		respondWithError(w, statusCode, message)
		return
	}

	respondWithJSON(w, http.StatusOK, item)
}

func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.FromString(chi.URLParam(r, "itemId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	if err := h.service.RemoveItem(r.Context(), itemID); err != nil {
		statusCode := mapErrorToStatusCode(err)
		message := "Failed to remove cart item"
		if statusCode == http.StatusNotFound {
			message = "Cart item not found"
		}
		respondWithError(w, statusCode, message)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) handleClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	if sessionID == "" {
		respondWithError(w, http.StatusBadRequest, "Session id is required")
		return
	}

	if err := h.service.ClearCart(r.Context(), sessionID); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "Failed to clear cart")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
