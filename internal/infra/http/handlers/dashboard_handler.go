package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/usecase"
)

type DashboardHandler struct {
	MonthlyPerformance *usecase.GetMonthlyPerformanceUseCase
}

func NewDashboardHandler(monthly *usecase.GetMonthlyPerformanceUseCase) *DashboardHandler {
	return &DashboardHandler{MonthlyPerformance: monthly}
}

// HandleMonthly aggregates reported and closed numbers for one calendar
// month. Defaults to the current month when no query params are given.
func (h *DashboardHandler) HandleMonthly(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	year := now.Year()
	month := now.Month()

	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2100 {
			http.Error(w, "year must be between 2000 and 2100", http.StatusBadRequest)
			return
		}
		year = parsed
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			http.Error(w, "month must be between 1 and 12", http.StatusBadRequest)
			return
		}
		month = time.Month(parsed)
	}

	perf, err := h.MonthlyPerformance.Execute(r.Context(), year, month)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, perf)
}
