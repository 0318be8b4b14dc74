package analytics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nmoreno/billetera/pkg/middleware"
	"github.com/nmoreno/billetera/pkg/response"
)

// Handler handles HTTP requests for spending analytics
type Handler struct {
	service *Service
}

// NewHandler creates a new analytics handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for analytics endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/category-analysis", h.CategoryAnalysis)
	r.Get("/spending-trends", h.SpendingTrends)

	return r
}

// CategoryAnalysis handles GET /analytics/category-analysis
// @Summary      Category analysis
// @Description  Break expenses down by category over a date range
// @Tags         analytics
// @Produce      json
// @Param        startDate query string false "Range start (RFC 3339 or YYYY-MM-DD); defaults to the first of the current month"
// @Param        endDate query string false "Range end; defaults to now"
// @Success      200 {object} response.APIResponse{data=CategoryAnalysis}
// @Router       /analytics/category-analysis [get]
func (h *Handler) CategoryAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	start, err := parseDate(r.URL.Query().Get("startDate"))
	if err != nil {
		response.BadRequest(w, "Invalid startDate")
		return
	}
	end, err := parseDate(r.URL.Query().Get("endDate"))
	if err != nil {
		response.BadRequest(w, "Invalid endDate")
		return
	}

	analysis, err := h.service.CategoryAnalysis(r.Context(), userID, start, end, time.Now())
	if err != nil {
		response.InternalError(w, "Failed to analyze categories")
		return
	}

	response.JSON(w, http.StatusOK, analysis)
}

// SpendingTrends handles GET /analytics/spending-trends
// @Summary      Spending trends
// @Description  Month-by-month expense totals ending in the current month
// @Tags         analytics
// @Produce      json
// @Param        months query int false "How many months back (default 6)"
// @Success      200 {object} response.APIResponse{data=[]TrendEntry}
// @Router       /analytics/spending-trends [get]
func (h *Handler) SpendingTrends(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	months := defaultTrendMonths
	if raw := r.URL.Query().Get("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.BadRequest(w, "Invalid months")
			return
		}
		months = parsed
	}

	entries, err := h.service.SpendingTrends(r.Context(), userID, months, time.Now())
	if err != nil {
		response.InternalError(w, "Failed to compute spending trends")
		return
	}

	response.JSON(w, http.StatusOK, entries)
}

// parseDate accepts a full timestamp or a bare calendar date
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
