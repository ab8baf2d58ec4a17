package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/salmanfarismn/LaborLog/internal/service"
)

type DashboardHandler struct {
	Summary service.SummaryService
}

func (h DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/stats", h.stats)
	r.Get("/dashboard/activities", h.activities)
}

func (h DashboardHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Summary.Dashboard(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"totalWorkers":         stats.TotalWorkers,
		"activeWorkers":        stats.ActiveWorkers,
		"presentToday":         stats.PresentToday,
		"absentToday":          stats.AbsentToday,
		"totalSitesActive":     stats.ActiveSites,
		"totalDailyWages":      stats.TotalDailyWages,
		"monthlyAdvancesGiven": stats.MonthlyAdvances,
		"monthlyPaymentsMade":  stats.MonthlyPayments,
	})
}

func (h DashboardHandler) activities(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	activities, err := h.Summary.RecentActivities(r.Context(), limit)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(activities))
	for _, a := range activities {
		resp = append(resp, map[string]any{
			"type":        a.Type,
			"id":          a.ID,
			"date":        a.Date.Format(time.RFC3339),
			"description": a.Description,
			"details":     a.Details,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
