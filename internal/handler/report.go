package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/salmanfarismn/LaborLog/internal/domain"
	"github.com/salmanfarismn/LaborLog/internal/service"
)

type ReportHandler struct {
	Service service.ReportService
}

func (h ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/workers", h.workerReport)
}

func (h ReportHandler) workerReport(w http.ResponseWriter, r *http.Request) {
	start, err := parseDateQuery(r, "startDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid startDate")
		return
	}
	end, err := parseDateQuery(r, "endDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid endDate")
		return
	}
	if start == nil || end == nil {
		writeError(w, http.StatusBadRequest, "startDate and endDate are required")
		return
	}
	siteID, err := parseIDQuery(r, "siteId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid siteId")
		return
	}
	workerID, err := parseIDQuery(r, "workerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid workerId")
		return
	}

	status := domain.WorkerStatus(r.URL.Query().Get("status"))
	if status == "ALL" {
		status = ""
	}
	if status != "" && !status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status filter")
		return
	}

	generated, err := h.Service.WorkerReport(r.Context(), service.ReportFilters{
		StartDate: *start,
		EndDate:   *end,
		SiteID:    siteID,
		WorkerID:  workerID,
		Status:    status,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDateRangeRequired), errors.Is(err, service.ErrInvalidDateRange):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNoMatchingWorkers):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeStoreError(w, err)
		}
		return
	}

	w.Header().Set("Content-Type", generated.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", generated.Filename))
	_, _ = w.Write(generated.Data)
}
