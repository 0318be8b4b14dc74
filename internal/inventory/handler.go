package inventory

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

// Handler handles HTTP requests for the pantry
type Handler struct {
	service *Service
}

// NewHandler creates a new inventory handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for inventory endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/alerts", h.Alerts)
	r.Get("/shopping-list", h.ShoppingList)
	r.Put("/{id}", h.Update)
	r.Patch("/{id}/adjust-days", h.AdjustDays)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /inventory
// @Summary      Add a pantry item
// @Description  Register a purchased product with its expiry or estimated shelf life
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body CreateItemRequest true "Item to add"
// @Success      201 {object} response.APIResponse{data=Item}
// @Failure      400 {object} response.APIResponse
// @Router       /inventory [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	item, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrNameRequired) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to add inventory item")
		return
	}

	response.JSON(w, http.StatusCreated, item)
}

// List handles GET /inventory
// @Summary      List the pantry
// @Description  List the user's items with derived freshness, soonest to expire first
// @Tags         inventory
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]ItemResponse}
// @Router       /inventory [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	items, err := h.service.List(r.Context(), userID, time.Now())
	if err != nil {
		response.InternalError(w, "Failed to list inventory")
		return
	}

	response.JSONWithCount(w, http.StatusOK, len(items), items)
}

// Alerts handles GET /inventory/alerts
// @Summary      Expiry alerts
// @Description  Items expired or about to expire, with derived suggestions
// @Tags         inventory
// @Produce      json
// @Success      200 {object} response.APIResponse{data=AlertReport}
// @Router       /inventory/alerts [get]
func (h *Handler) Alerts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	report, err := h.service.Alerts(r.Context(), userID, time.Now())
	if err != nil {
		response.InternalError(w, "Failed to check inventory alerts")
		return
	}

	response.JSON(w, http.StatusOK, report)
}

// ShoppingList handles GET /inventory/shopping-list
// @Summary      Shopping recommendations
// @Description  Products consumed repeatedly in the last month, most frequent first
// @Tags         inventory
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]Recommendation}
// @Router       /inventory/shopping-list [get]
func (h *Handler) ShoppingList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	recommendations, err := h.service.ShoppingRecommendations(r.Context(), userID, time.Now())
	if err != nil {
		response.InternalError(w, "Failed to build recommendations")
		return
	}

	response.JSONWithCount(w, http.StatusOK, len(recommendations), recommendations)
}

// Update handles PUT /inventory/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	item, err := h.service.Update(r.Context(), id, userID, &req)
	if err != nil {
		if errors.Is(err, ErrNameRequired) || errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrInvalidDays) {
			response.BadRequest(w, err.Error())
			return
		}
		h.writeServiceError(w, err, "Failed to update inventory item")
		return
	}

	response.JSON(w, http.StatusOK, item)
}

// AdjustDays handles PATCH /inventory/{id}/adjust-days
func (h *Handler) AdjustDays(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	var req AdjustDaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	item, err := h.service.AdjustDays(r.Context(), id, userID, req.EstimatedLifeDays)
	if err != nil {
		if errors.Is(err, ErrInvalidDays) || errors.Is(err, ErrNotPerishable) {
			response.BadRequest(w, err.Error())
			return
		}
		h.writeServiceError(w, err, "Failed to adjust shelf life")
		return
	}

	response.JSON(w, http.StatusOK, item)
}

// Delete handles DELETE /inventory/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		h.writeServiceError(w, err, "Failed to delete inventory item")
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, ErrItemNotFound) {
		response.NotFound(w, err.Error())
		return
	}
	response.InternalError(w, fallback)
}
