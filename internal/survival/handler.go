package survival

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/nmoreno/billetera/pkg/middleware"
	"github.com/nmoreno/billetera/pkg/response"
)

// CheckPurchaseRequest asks whether a purchase should go through
type CheckPurchaseRequest struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CategoriesResponse lists the category rules in force
type CategoriesResponse struct {
	Blocked   []string `json:"blocked"`
	Essential []string `json:"essential"`
}

// Handler handles HTTP requests for survival mode
type Handler struct {
	service *Service
}

// NewHandler creates a new survival handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for survival endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/status", h.GetStatus)
	r.Get("/categories", h.GetCategories)
	r.Post("/check-purchase", h.CheckPurchase)

	return r
}

// GetStatus handles GET /survival/status
// @Summary      Survival mode status
// @Description  Evaluate the current month's free money against the survival thresholds
// @Tags         survival
// @Produce      json
// @Success      200 {object} response.APIResponse{data=Status}
// @Router       /survival/status [get]
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	status, err := h.service.Status(r.Context(), userID, time.Now())
	if err != nil {
		response.InternalError(w, "Failed to evaluate survival status")
		return
	}

	response.JSON(w, http.StatusOK, status)
}

// GetCategories handles GET /survival/categories
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	blocked, essential := h.service.Categories()
	response.JSON(w, http.StatusOK, CategoriesResponse{Blocked: blocked, Essential: essential})
}

// CheckPurchase handles POST /survival/check-purchase
// @Summary      Check a purchase
// @Description  Classify an intended purchase under the current survival status
// @Tags         survival
// @Accept       json
// @Produce      json
// @Param        request body CheckPurchaseRequest true "Purchase to check"
// @Success      200 {object} response.APIResponse{data=PurchaseVerdict}
// @Router       /survival/check-purchase [post]
func (h *Handler) CheckPurchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CheckPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	verdict, err := h.service.CheckPurchase(r.Context(), userID, req.Category, req.Amount, time.Now())
	if err != nil {
		response.InternalError(w, "Failed to check purchase")
		return
	}

	response.JSON(w, http.StatusOK, verdict)
}
