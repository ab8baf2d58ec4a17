package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/salmanfarismn/LaborLog/internal/domain"
	"github.com/salmanfarismn/LaborLog/internal/repository"
	"github.com/salmanfarismn/LaborLog/internal/service"
)

// AttendanceStore is the slice of the attendance repository this handler
// writes through.
type AttendanceStore interface {
	ListByDate(ctx context.Context, day time.Time) ([]domain.Attendance, error)
	UpsertByDay(ctx context.Context, p repository.UpsertAttendanceParams) (*domain.Attendance, error)
	Delete(ctx context.Context, id int64) error
}

type AttendanceHandler struct {
	Repo    AttendanceStore
	Summary service.SummaryService
}

func (h AttendanceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/attendance", h.listByDate)
	r.Post("/attendance", h.save)
	r.Post("/attendance/bulk", h.bulkSave)
	r.Delete("/attendance/{id}", h.delete)
	r.Get("/attendance/summary", h.monthlySummary)
}

type attendanceRequest struct {
	Date       string   `json:"date"`
	WorkerID   int64    `json:"workerId"`
	SiteID     *int64   `json:"siteId"`
	Kind       string   `json:"kind"`
	CheckIn    string   `json:"checkIn"`
	CheckOut   string   `json:"checkOut"`
	TotalHours *float64 `json:"totalHours"`
	Notes      string   `json:"notes"`
}

func (req attendanceRequest) params() (repository.UpsertAttendanceParams, string) {
	if req.Date == "" {
		return repository.UpsertAttendanceParams{}, "date is required"
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return repository.UpsertAttendanceParams{}, "invalid date format"
	}
	if req.WorkerID == 0 {
		return repository.UpsertAttendanceParams{}, "workerId is required"
	}
	kind := domain.AttendanceKind(req.Kind)
	if !kind.Valid() {
		return repository.UpsertAttendanceParams{}, "invalid attendance kind"
	}

	params := repository.UpsertAttendanceParams{
		WorkerID:   req.WorkerID,
		SiteID:     req.SiteID,
		Date:       req.Date,
		Kind:       kind,
		TotalHours: req.TotalHours,
		Notes:      req.Notes,
	}
	// Check-in/out arrive as wall-clock times on the attendance day.
	if req.CheckIn != "" {
		t, err := time.ParseInLocation(dateLayout+" 15:04", req.Date+" "+req.CheckIn, time.Local)
		if err != nil {
			return repository.UpsertAttendanceParams{}, "invalid checkIn time"
		}
		params.CheckIn = &t
	}
	if req.CheckOut != "" {
		t, err := time.ParseInLocation(dateLayout+" 15:04", req.Date+" "+req.CheckOut, time.Local)
		if err != nil {
			return repository.UpsertAttendanceParams{}, "invalid checkOut time"
		}
		params.CheckOut = &t
	}
	return params, ""
}

func (h AttendanceHandler) listByDate(w http.ResponseWriter, r *http.Request) {
	day, err := parseDateQuery(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	if day == nil {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}
	items, err := h.Repo.ListByDate(r.Context(), *day)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, a := range items {
		resp = append(resp, toAttendanceJSON(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h AttendanceHandler) save(w http.ResponseWriter, r *http.Request) {
	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	params, problem := req.params()
	if problem != "" {
		writeError(w, http.StatusBadRequest, problem)
		return
	}
	a, err := h.Repo.UpsertByDay(r.Context(), params)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAttendanceJSON(*a))
}

// bulkSave upserts one record per worker sequentially. Individual failures
// (bad payload, unknown worker) are counted, not fatal: the remaining records
// still persist and nothing is rolled back.
func (h AttendanceHandler) bulkSave(w http.ResponseWriter, r *http.Request) {
	var reqs []attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if len(reqs) == 0 {
		writeError(w, http.StatusBadRequest, "no attendance entries provided")
		return
	}

	saved := 0
	failed := 0
	for _, req := range reqs {
		params, problem := req.params()
		if problem != "" {
			failed++
			continue
		}
		if _, err := h.Repo.UpsertByDay(r.Context(), params); err != nil {
			failed++
			continue
		}
		saved++
	}

	counts := map[string]any{
		"total":  len(reqs),
		"saved":  saved,
		"failed": failed,
	}
	if failed > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, counts)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (h AttendanceHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid attendance id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h AttendanceHandler) monthlySummary(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year or month")
		return
	}
	summaries, err := h.Summary.MonthlyAttendance(r.Context(), year, month)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(summaries))
	for _, s := range summaries {
		resp = append(resp, map[string]any{
			"workerId":       s.WorkerID,
			"workerName":     s.WorkerName,
			"fullDays":       s.FullDays,
			"halfDays":       s.HalfDays,
			"absents":        s.Absents,
			"customHours":    s.CustomHours,
			"totalWorkDays":  s.TotalWorkDays,
			"effectiveDays":  s.EffectiveDays,
			"dailyWage":      s.DailyWage,
			"calculatedWage": s.CalculatedWage,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func toAttendanceJSON(a domain.Attendance) map[string]any {
	return map[string]any{
		"id":         a.ID,
		"workerId":   a.WorkerID,
		"workerName": a.WorkerName,
		"siteId":     a.SiteID,
		"siteName":   a.SiteName,
		"date":       a.Date.Format(dateLayout),
		"kind":       string(a.Kind),
		"checkIn":    timeOrNil(a.CheckIn),
		"checkOut":   timeOrNil(a.CheckOut),
		"totalHours": a.TotalHours,
		"notes":      a.Notes,
		"createdAt":  a.CreatedAt.Format(time.RFC3339),
	}
}

func timeOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
