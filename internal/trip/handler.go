package trip

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nmoreno/billetera/pkg/middleware"
	"github.com/nmoreno/billetera/pkg/response"
)

// Handler handles HTTP requests for trip operations
type Handler struct {
	service *Service
}

// NewHandler creates a new trip handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for trip endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{tripId}", h.GetByID)
	r.Put("/{tripId}", h.Update)
	r.Patch("/{tripId}/status", h.UpdateStatus)
	r.Delete("/{tripId}", h.Delete)
	r.Post("/{tripId}/participants", h.AddParticipant)
	r.Delete("/{tripId}/participants/{participantId}", h.RemoveParticipant)
	r.Post("/{tripId}/expenses", h.AddExpense)
	r.Delete("/{tripId}/expenses/{expenseId}", h.RemoveExpense)
	r.Get("/{tripId}/settlement", h.GetSettlement)

	return r
}

// Create handles POST /trips
// @Summary      Create a trip
// @Description  Create a trip with an optional initial list of participants
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        request body CreateTripRequest true "Trip to create"
// @Success      201 {object} response.APIResponse{data=TripResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /trips [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	trip, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrNameRequired) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create trip")
		return
	}

	response.JSON(w, http.StatusCreated, trip.ToResponse())
}

// List handles GET /trips
// @Summary      List trips
// @Description  List the authenticated user's trips, newest first
// @Tags         trips
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]TripResponse}
// @Router       /trips [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	trips, err := h.service.List(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to list trips")
		return
	}

	tripResponses := make([]*TripResponse, len(trips))
	for i, trip := range trips {
		tripResponses[i] = trip.ToResponse()
	}

	response.JSONWithCount(w, http.StatusOK, len(tripResponses), tripResponses)
}

// GetByID handles GET /trips/{tripId}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	tripID, err := strconv.ParseInt(chi.URLParam(r, "tripId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	trip, err := h.service.GetByID(r.Context(), tripID, userID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to get trip")
		return
	}

	response.JSON(w, http.StatusOK, trip.ToResponse())
}

// Update handles PUT /trips/{tripId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	tripID, err := strconv.ParseInt(chi.URLParam(r, "tripId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	var req UpdateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	trip, err := h.service.Update(r.Context(), tripID, userID, &req)
	if err != nil {
		if errors.Is(err, ErrNameRequired) {
			response.BadRequest(w, err.Error())
			return
		}
		h.writeServiceError(w, err, "Failed to update trip")
		return
	}

	response.JSON(w, http.StatusOK, trip.ToResponse())
}

// UpdateStatus handles PATCH /trips/{tripId}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	tripID, err := strconv.ParseInt(chi.URLParam(r, "tripId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	trip, err := h.service.UpdateStatus(r.Context(), tripID, userID, req.Status)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			response.BadRequest(w, err.Error())
			return
		}
		h.writeServiceError(w, err, "Failed to update trip status")
		return
	}

	response.JSON(w, http.StatusOK, trip.ToResponse())
}

// Delete handles DELETE /trips/{tripId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	tripID, err := strconv.ParseInt(chi.URLParam(r, "tripId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	if err := h.service.Delete(r.Context(), tripID, userID); err != nil {
		h.writeServiceError(w, err, "Failed to delete trip")
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// AddParticipant handles POST /trips/{tripId}/participants
func (h *Handler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	tripID, err := strconv.ParseInt(chi.URLParam(r, "tripId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	var req ParticipantInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	trip, err := h.service.AddParticipant(r.Context(), tripID, userID, &req)
	if err != nil {
		if errors.Is(err, ErrNameRequired) {
			response.BadRequest(w, err.Error())
			return
		}
		h.writeServiceError(w, err, "Failed to add participant")
		return
	}

	response.JSON(w, http.StatusCreated, trip.ToResponse())
}

// RemoveParticipant handles DELETE /trips/{tripId}/participants/{participantId}
func (h *Handler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	tripID, err := strconv.ParseInt(chi.URLParam(r, "tripId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}
	participantID, err := strconv.ParseInt(chi.URLParam(r, "participantId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid participant ID")
		return
	}

	trip, err := h.service.RemoveParticipant(r.Context(), tripID, userID, participantID)
	if err != nil {
		switch {
		case errors.Is(err, ErrParticipantNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrParticipantHasExpenses):
			response.BadRequest(w, err.Error())
		default:
			h.writeServiceError(w, err, "Failed to remove participant")
		}
		return
	}

	response.JSON(w, http.StatusOK, trip.ToResponse())
}

// AddExpense handles POST /trips/{tripId}/expenses
// @Summary      Record a shared expense
// @Description  Record an expense fronted by one participant and split among others
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        tripId path int true "Trip ID"
// @Param        request body AddExpenseRequest true "Expense to record"
// @Success      201 {object} response.APIResponse{data=TripResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /trips/{tripId}/expenses [post]
func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	tripID, err := strconv.ParseInt(chi.URLParam(r, "tripId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	var req AddExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	trip, err := h.service.AddExpense(r.Context(), tripID, userID, &req)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrPayerNotParticipant) ||
			errors.Is(err, ErrUnknownSplitMember) || errors.Is(err, ErrSplitMismatch) {
			response.BadRequest(w, err.Error())
			return
		}
		h.writeServiceError(w, err, "Failed to add expense")
		return
	}

	response.JSON(w, http.StatusCreated, trip.ToResponse())
}

// RemoveExpense handles DELETE /trips/{tripId}/expenses/{expenseId}
func (h *Handler) RemoveExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	tripID, err := strconv.ParseInt(chi.URLParam(r, "tripId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}
	expenseID, err := strconv.ParseInt(chi.URLParam(r, "expenseId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	trip, err := h.service.RemoveExpense(r.Context(), tripID, userID, expenseID)
	if err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		h.writeServiceError(w, err, "Failed to remove expense")
		return
	}

	response.JSON(w, http.StatusOK, trip.ToResponse())
}

// GetSettlement handles GET /trips/{tripId}/settlement
// @Summary      Settlement plan
// @Description  Per-participant balances and the minimal transfers that square them
// @Tags         trips
// @Produce      json
// @Param        tripId path int true "Trip ID"
// @Success      200 {object} SettlementEnvelope
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{tripId}/settlement [get]
func (h *Handler) GetSettlement(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	tripID, err := strconv.ParseInt(chi.URLParam(r, "tripId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid trip ID")
		return
	}

	envelope, err := h.service.Settlement(r.Context(), tripID, userID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to compute settlement")
		return
	}

	// Balances and settlements sit at the top level of this payload
	response.Raw(w, http.StatusOK, envelope)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, ErrTripNotFound) {
		response.NotFound(w, err.Error())
		return
	}
	response.InternalError(w, fallback)
}
