package loan

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nmoreno/billetera/pkg/middleware"
	"github.com/nmoreno/billetera/pkg/response"
)

// Handler handles HTTP requests for loan operations
type Handler struct {
	service *Service
}

// NewHandler creates a new loan handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for loan endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Post("/{id}/paid", h.Paid)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /loans
// @Summary      Register a loan
// @Description  Register money lent to or borrowed from a counterparty
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        request body CreateLoanRequest true "Loan to register"
// @Success      201 {object} response.APIResponse{data=LoanResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /loans [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	loan, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrInvalidDirection) || errors.Is(err, ErrInvalidAmount) ||
			errors.Is(err, ErrCounterpartyMissing) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create loan")
		return
	}

	response.JSON(w, http.StatusCreated, loan.ToResponse())
}

// List handles GET /loans
// @Summary      List loans
// @Description  List loans the authenticated user is a party to
// @Tags         loans
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]LoanResponse}
// @Router       /loans [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	loans, err := h.service.List(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to list loans")
		return
	}

	loanResponses := make([]*LoanResponse, len(loans))
	for i, loan := range loans {
		loanResponses[i] = loan.ToResponse()
	}

	response.JSONWithCount(w, http.StatusOK, len(loanResponses), loanResponses)
}

// GetByID handles GET /loans/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid loan ID")
		return
	}

	loan, err := h.service.GetByID(r.Context(), id, userID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to get loan")
		return
	}

	response.JSON(w, http.StatusOK, loan.ToResponse())
}

// Update handles PUT /loans/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid loan ID")
		return
	}

	var req UpdateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	loan, err := h.service.Update(r.Context(), id, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrNotPending):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrNotCreator):
			response.Forbidden(w, err.Error())
		default:
			h.writeServiceError(w, err, "Failed to update loan")
		}
		return
	}

	response.JSON(w, http.StatusOK, loan.ToResponse())
}

// Paid handles POST /loans/{id}/paid
// @Summary      Advance repayment
// @Description  Borrower marks the loan paid; lender confirms the repayment
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        id path int true "Loan ID"
// @Param        request body PaidRequest true "mark_paid or confirm_paid"
// @Success      200 {object} response.APIResponse{data=LoanResponse}
// @Failure      403 {object} response.APIResponse
// @Router       /loans/{id}/paid [post]
func (h *Handler) Paid(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid loan ID")
		return
	}

	var req PaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	loan, err := h.service.Paid(r.Context(), id, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAction) || errors.Is(err, ErrAlreadyPaid):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrNotBorrower) || errors.Is(err, ErrNotLender):
			response.Forbidden(w, err.Error())
		default:
			h.writeServiceError(w, err, "Failed to update loan")
		}
		return
	}

	response.JSON(w, http.StatusOK, loan.ToResponse())
}

// Delete handles DELETE /loans/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid loan ID")
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		if errors.Is(err, ErrNotCreator) {
			response.Forbidden(w, err.Error())
			return
		}
		h.writeServiceError(w, err, "Failed to delete loan")
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, ErrLoanNotFound) {
		response.NotFound(w, err.Error())
		return
	}
	response.InternalError(w, fallback)
}
