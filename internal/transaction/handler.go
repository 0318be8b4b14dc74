package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nmoreno/billetera/pkg/middleware"
	"github.com/nmoreno/billetera/pkg/response"
)

// Handler handles HTTP requests for transaction operations
type Handler struct {
	service *Service
}

// NewHandler creates a new transaction handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for transaction endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/stats", h.GetMonthlyStats)
	r.Get("/projections", h.GetProjections)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /transactions
// @Summary      Record a transaction
// @Description  Record an income or expense; credit purchases may open an installment plan
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        request body CreateTransactionRequest true "Transaction to record"
// @Success      201 {object} response.APIResponse{data=TransactionResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /transactions [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	tx, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrInvalidType) || errors.Is(err, ErrInvalidPaymentMethod) ||
			errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrInvalidInstallments) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create transaction")
		return
	}

	response.JSON(w, http.StatusCreated, tx.ToResponse())
}

// List handles GET /transactions
// @Summary      List transactions
// @Description  List the authenticated user's transactions, optionally filtered
// @Tags         transactions
// @Produce      json
// @Param        type query string false "income or expense"
// @Param        category query string false "Category filter"
// @Param        from query string false "RFC3339 lower bound (inclusive)"
// @Param        to query string false "RFC3339 upper bound (exclusive)"
// @Success      200 {object} response.APIResponse{data=[]TransactionResponse}
// @Router       /transactions [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	filters := ListFilters{
		Type:     r.URL.Query().Get("type"),
		Category: r.URL.Query().Get("category"),
	}
	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			response.BadRequest(w, "Invalid from date")
			return
		}
		filters.From = &t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			response.BadRequest(w, "Invalid to date")
			return
		}
		filters.To = &t
	}

	txs, err := h.service.List(r.Context(), userID, filters)
	if err != nil {
		response.InternalError(w, "Failed to list transactions")
		return
	}

	txResponses := make([]*TransactionResponse, len(txs))
	for i, tx := range txs {
		txResponses[i] = tx.ToResponse()
	}

	response.JSONWithCount(w, http.StatusOK, len(txResponses), txResponses)
}

// GetMonthlyStats handles GET /transactions/stats
// @Summary      Monthly free-money stats
// @Description  Income, expenses and active credit installments for the current month
// @Tags         transactions
// @Produce      json
// @Success      200 {object} response.APIResponse{data=MonthlyStatsResponse}
// @Router       /transactions/stats [get]
func (h *Handler) GetMonthlyStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	stats, err := h.service.MonthlyStats(r.Context(), userID, time.Now())
	if err != nil {
		response.InternalError(w, "Failed to compute monthly stats")
		return
	}

	response.JSON(w, http.StatusOK, stats)
}

// GetProjections handles GET /transactions/projections
// @Summary      Upcoming credit commitments
// @Description  Six-month projection of active installment charges; months without commitments are omitted
// @Tags         transactions
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]ProjectionEntry}
// @Router       /transactions/projections [get]
func (h *Handler) GetProjections(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	entries, err := h.service.Projections(r.Context(), userID, time.Now())
	if err != nil {
		response.InternalError(w, "Failed to compute projections")
		return
	}

	response.JSON(w, http.StatusOK, entries)
}

// GetByID handles GET /transactions/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}

	tx, err := h.service.GetByID(r.Context(), id, userID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to get transaction")
		return
	}

	response.JSON(w, http.StatusOK, tx.ToResponse())
}

// Update handles PUT /transactions/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}

	var req UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	tx, err := h.service.Update(r.Context(), id, userID, &req)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) {
			response.BadRequest(w, err.Error())
			return
		}
		h.writeServiceError(w, err, "Failed to update transaction")
		return
	}

	response.JSON(w, http.StatusOK, tx.ToResponse())
}

// Delete handles DELETE /transactions/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		h.writeServiceError(w, err, "Failed to delete transaction")
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrTransactionNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotOwner):
		response.Forbidden(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
