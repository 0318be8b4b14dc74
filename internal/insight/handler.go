package insight

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nmoreno/billetera/pkg/middleware"
	"github.com/nmoreno/billetera/pkg/response"
)

// Handler handles HTTP requests for spending insights
type Handler struct {
	service *Service
}

// NewHandler creates a new insight handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for insight endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/opportunity-cost", h.GetOpportunityCost)

	return r
}

// GetOpportunityCost handles GET /insights/opportunity-cost
// @Summary      Opportunity-cost report
// @Description  What this month's spending per category could have bought instead
// @Tags         insights
// @Produce      json
// @Param        currency query string false "Currency code, defaults to USD"
// @Success      200 {object} response.APIResponse{data=Report}
// @Router       /insights/opportunity-cost [get]
func (h *Handler) GetOpportunityCost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	currency := r.URL.Query().Get("currency")
	if currency == "" {
		currency = "USD"
	}

	report, err := h.service.OpportunityCost(r.Context(), userID, currency, time.Now())
	if err != nil {
		response.InternalError(w, "Failed to build insights")
		return
	}

	response.JSON(w, http.StatusOK, report)
}
