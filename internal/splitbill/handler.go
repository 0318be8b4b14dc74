package splitbill

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nmoreno/billetera/pkg/middleware"
	"github.com/nmoreno/billetera/pkg/response"
)

// Handler handles HTTP requests for split bills
type Handler struct {
	service *Service
}

// NewHandler creates a new split-bill handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for split-bill endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/transaction/{transactionId}", h.ListByTransaction)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}/assign-items", h.AssignItems)
	r.Put("/{id}/tip", h.UpdateTip)
	r.Put("/{id}/mark-paid/{participantId}", h.MarkPaid)
	r.Delete("/{id}", h.Cancel)

	return r
}

// Create handles POST /split-bills
// @Summary      Split a transaction
// @Description  Divide a transaction among contacts, equally or by item
// @Tags         split-bills
// @Accept       json
// @Produce      json
// @Param        request body CreateBillRequest true "Split to create"
// @Success      201 {object} response.APIResponse{data=BillResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /split-bills [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	bill, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSplitType) || errors.Is(err, ErrTooFewParticipants) ||
			errors.Is(err, ErrInvalidTip) || errors.Is(err, ErrInvalidTipDistribution) ||
			errors.Is(err, ErrItemsRequired):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrTransactionNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotTransactionOwner):
			response.Forbidden(w, err.Error())
		default:
			response.InternalError(w, "Failed to create split bill")
		}
		return
	}

	response.JSON(w, http.StatusCreated, NewBillResponse(bill))
}

// List handles GET /split-bills
// @Summary      List split bills
// @Description  List the bills the user created, newest first
// @Tags         split-bills
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]BillResponse}
// @Router       /split-bills [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	bills, err := h.service.List(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to list split bills")
		return
	}

	h.writeBills(w, bills)
}

// ListByTransaction handles GET /split-bills/transaction/{transactionId}
func (h *Handler) ListByTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	transactionID, err := strconv.ParseInt(chi.URLParam(r, "transactionId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}

	bills, err := h.service.ListByTransaction(r.Context(), transactionID, userID)
	if err != nil {
		response.InternalError(w, "Failed to list split bills")
		return
	}

	h.writeBills(w, bills)
}

// GetByID handles GET /split-bills/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid bill ID")
		return
	}

	bill, err := h.service.GetByID(r.Context(), id, userID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to get split bill")
		return
	}

	response.JSON(w, http.StatusOK, NewBillResponse(bill))
}

// AssignItems handles PUT /split-bills/{id}/assign-items
// @Summary      Assign items
// @Description  Distribute a by-item bill's lines among its participants
// @Tags         split-bills
// @Accept       json
// @Produce      json
// @Param        id path int true "Bill ID"
// @Param        request body AssignItemsRequest true "Item assignments"
// @Success      200 {object} response.APIResponse{data=BillResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /split-bills/{id}/assign-items [put]
func (h *Handler) AssignItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid bill ID")
		return
	}

	var req AssignItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	bill, err := h.service.AssignItems(r.Context(), id, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotByItem) || errors.Is(err, ErrBillNotActive):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrParticipantNotFound):
			response.NotFound(w, err.Error())
		default:
			h.writeServiceError(w, err, "Failed to assign items")
		}
		return
	}

	response.JSON(w, http.StatusOK, NewBillResponse(bill))
}

// UpdateTip handles PUT /split-bills/{id}/tip
func (h *Handler) UpdateTip(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid bill ID")
		return
	}

	var req UpdateTipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	bill, err := h.service.UpdateTip(r.Context(), id, userID, &req)
	if err != nil {
		if errors.Is(err, ErrInvalidTip) || errors.Is(err, ErrInvalidTipDistribution) ||
			errors.Is(err, ErrBillNotActive) {
			response.BadRequest(w, err.Error())
			return
		}
		h.writeServiceError(w, err, "Failed to update tip")
		return
	}

	response.JSON(w, http.StatusOK, NewBillResponse(bill))
}

// MarkPaid handles PUT /split-bills/{id}/mark-paid/{participantId}
func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid bill ID")
		return
	}
	participantID, err := strconv.ParseInt(chi.URLParam(r, "participantId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid participant ID")
		return
	}

	bill, err := h.service.MarkPaid(r.Context(), id, userID, participantID)
	if err != nil {
		if errors.Is(err, ErrParticipantNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		h.writeServiceError(w, err, "Failed to record payment")
		return
	}

	response.JSON(w, http.StatusOK, NewBillResponse(bill))
}

// Cancel handles DELETE /split-bills/{id}
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid bill ID")
		return
	}

	bill, err := h.service.Cancel(r.Context(), id, userID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to cancel split bill")
		return
	}

	response.JSON(w, http.StatusOK, NewBillResponse(bill))
}

func (h *Handler) writeBills(w http.ResponseWriter, bills []*Bill) {
	responses := make([]*BillResponse, len(bills))
	for i, bill := range bills {
		responses[i] = NewBillResponse(bill)
	}
	response.JSONWithCount(w, http.StatusOK, len(responses), responses)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, ErrBillNotFound) {
		response.NotFound(w, err.Error())
		return
	}
	response.InternalError(w, fallback)
}
