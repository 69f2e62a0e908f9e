package handler

import (
	"net/http"

	"tinyshop/internal/auth"
	"tinyshop/internal/model"
	"tinyshop/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests. Both routes require
// verified claims in the request context.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests. Callers may only place orders
// for themselves.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeServiceError(w, r, model.ErrUnauthorised, h.logger)
		return
	}

	var req model.OrderRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	if req.UserID != claims.UserID {
		h.logger.Warn().
			Int64("caller_id", claims.UserID).
			Int64("user_id", req.UserID).
			Msg("order placed for another user")
		writeServiceError(w, r, model.ErrForbidden, h.logger)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeServiceError(w, r, model.ErrUnauthorised, h.logger)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "Invalid order ID", h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	if order.UserID != claims.UserID {
		writeServiceError(w, r, model.ErrForbidden, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
