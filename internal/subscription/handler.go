package subscription

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nmoreno/billetera/pkg/middleware"
	"github.com/nmoreno/billetera/pkg/response"
)

// Handler handles HTTP requests for subscription operations
type Handler struct {
	service *Service
}

// NewHandler creates a new subscription handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for subscription endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/confirm-payment", h.ConfirmPayment)
	r.Get("/{id}/payments", h.ListPayments)

	return r
}

// Create handles POST /subscriptions
// @Summary      Register a subscription
// @Description  Register a recurring charge billed on a fixed day each month
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        request body CreateSubscriptionRequest true "Subscription to register"
// @Success      201 {object} response.APIResponse{data=SubscriptionResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /subscriptions [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	sub, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrNameRequired) || errors.Is(err, ErrInvalidAmount) ||
			errors.Is(err, ErrInvalidBillingDay) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create subscription")
		return
	}

	response.JSON(w, http.StatusCreated, sub.ToResponse())
}

// List handles GET /subscriptions
// @Summary      List subscriptions
// @Tags         subscriptions
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]SubscriptionResponse}
// @Router       /subscriptions [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	subs, err := h.service.List(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to list subscriptions")
		return
	}

	subResponses := make([]*SubscriptionResponse, len(subs))
	for i, sub := range subs {
		subResponses[i] = sub.ToResponse()
	}

	response.JSONWithCount(w, http.StatusOK, len(subResponses), subResponses)
}

// GetByID handles GET /subscriptions/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid subscription ID")
		return
	}

	sub, err := h.service.GetByID(r.Context(), id, userID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to get subscription")
		return
	}

	response.JSON(w, http.StatusOK, sub.ToResponse())
}

// Update handles PUT /subscriptions/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid subscription ID")
		return
	}

	var req UpdateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	sub, err := h.service.Update(r.Context(), id, userID, &req)
	if err != nil {
		if errors.Is(err, ErrNameRequired) || errors.Is(err, ErrInvalidAmount) ||
			errors.Is(err, ErrInvalidBillingDay) || errors.Is(err, ErrInvalidStatus) {
			response.BadRequest(w, err.Error())
			return
		}
		h.writeServiceError(w, err, "Failed to update subscription")
		return
	}

	response.JSON(w, http.StatusOK, sub.ToResponse())
}

// Delete handles DELETE /subscriptions/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid subscription ID")
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		h.writeServiceError(w, err, "Failed to delete subscription")
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// ConfirmPayment handles POST /subscriptions/{id}/confirm-payment
// @Summary      Confirm a month's payment
// @Description  Mark one month of the subscription as paid
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        id path int true "Subscription ID"
// @Param        request body ConfirmPaymentRequest true "Month to confirm"
// @Success      200 {object} response.APIResponse{data=PaymentResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /subscriptions/{id}/confirm-payment [post]
func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid subscription ID")
		return
	}

	var req ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	record, err := h.service.ConfirmPayment(r.Context(), id, userID, &req)
	if err != nil {
		if errors.Is(err, ErrInvalidPeriod) {
			response.BadRequest(w, err.Error())
			return
		}
		h.writeServiceError(w, err, "Failed to confirm payment")
		return
	}

	response.JSON(w, http.StatusOK, record.ToResponse())
}

// ListPayments handles GET /subscriptions/{id}/payments
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid subscription ID")
		return
	}

	records, err := h.service.Payments(r.Context(), id, userID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to list payments")
		return
	}

	payments := make([]*PaymentResponse, len(records))
	for i, p := range records {
		payments[i] = p.ToResponse()
	}

	response.JSONWithCount(w, http.StatusOK, len(payments), payments)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, ErrSubscriptionNotFound) {
		response.NotFound(w, err.Error())
		return
	}
	response.InternalError(w, fallback)
}
