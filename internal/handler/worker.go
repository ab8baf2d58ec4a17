package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/salmanfarismn/LaborLog/internal/domain"
	"github.com/salmanfarismn/LaborLog/internal/repository"
	"github.com/salmanfarismn/LaborLog/internal/service"
)

type WorkerHandler struct {
	Repo       repository.WorkerRepository
	Attendance repository.AttendanceRepository
	Payments   repository.PaymentRepository
	Ledger     service.LedgerService
}

func (h WorkerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/workers", h.list)
	r.Post("/workers", h.create)
	r.Get("/workers/balances", h.balances)
	r.Get("/workers/{id}", h.get)
	r.Put("/workers/{id}", h.update)
	r.Delete("/workers/{id}", h.delete)
	r.Post("/workers/{id}/toggle-status", h.toggleStatus)
	r.Get("/workers/{id}/ledger", h.ledger)
}

type workerRequest struct {
	FullName      string `json:"fullName"`
	Phone         string `json:"phone"`
	Role          string `json:"role"`
	DefaultSiteID *int64 `json:"defaultSiteId"`
	DailyWage     int64  `json:"dailyWage"`
	JoiningDate   string `json:"joiningDate"`
	Status        string `json:"status"`
}

func (req workerRequest) validate() (repository.CreateWorkerParams, string) {
	if req.FullName == "" {
		return repository.CreateWorkerParams{}, "fullName is required"
	}
	if req.DailyWage < 0 {
		return repository.CreateWorkerParams{}, "dailyWage must not be negative"
	}
	if req.JoiningDate == "" {
		return repository.CreateWorkerParams{}, "joiningDate is required"
	}
	if _, err := time.Parse(dateLayout, req.JoiningDate); err != nil {
		return repository.CreateWorkerParams{}, "invalid joiningDate format"
	}
	status := domain.WorkerStatus(req.Status)
	if req.Status == "" {
		status = domain.StatusActive
	} else if !status.Valid() {
		return repository.CreateWorkerParams{}, "invalid status"
	}
	return repository.CreateWorkerParams{
		FullName:      req.FullName,
		Phone:         req.Phone,
		Role:          req.Role,
		DefaultSiteID: req.DefaultSiteID,
		DailyWage:     req.DailyWage,
		JoiningDate:   req.JoiningDate,
		Status:        status,
	}, ""
}

func (h WorkerHandler) list(w http.ResponseWriter, r *http.Request) {
	status := domain.WorkerStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status filter")
		return
	}
	items, err := h.Repo.List(r.Context(), status)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, wk := range items {
		resp = append(resp, toWorkerJSON(wk))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h WorkerHandler) create(w http.ResponseWriter, r *http.Request) {
	var req workerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	params, problem := req.validate()
	if problem != "" {
		writeError(w, http.StatusBadRequest, problem)
		return
	}
	wk, err := h.Repo.Create(r.Context(), params)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWorkerJSON(*wk))
}

func (h WorkerHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid worker id")
		return
	}
	wk, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	attendances, err := h.Attendance.RecentForWorker(r.Context(), id, 30)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	payments, err := h.Payments.RecentForWorker(r.Context(), id, 30)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	resp := toWorkerJSON(*wk)
	attResp := make([]map[string]any, 0, len(attendances))
	for _, a := range attendances {
		attResp = append(attResp, toAttendanceJSON(a))
	}
	payResp := make([]map[string]any, 0, len(payments))
	for _, p := range payments {
		payResp = append(payResp, toPaymentJSON(p))
	}
	resp["attendances"] = attResp
	resp["payments"] = payResp
	writeJSON(w, http.StatusOK, resp)
}

func (h WorkerHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid worker id")
		return
	}
	var req workerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	params, problem := req.validate()
	if problem != "" {
		writeError(w, http.StatusBadRequest, problem)
		return
	}
	wk, err := h.Repo.Update(r.Context(), id, params)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkerJSON(*wk))
}

func (h WorkerHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid worker id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h WorkerHandler) toggleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid worker id")
		return
	}
	wk, err := h.Repo.ToggleStatus(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkerJSON(*wk))
}

func (h WorkerHandler) ledger(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid worker id")
		return
	}
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
	if start != nil && end != nil && start.After(*end) {
		writeError(w, http.StatusBadRequest, "startDate must be before endDate")
		return
	}

	ledger, err := h.Ledger.WorkerLedger(r.Context(), id, start, end)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	entries := make([]map[string]any, 0, len(ledger.Entries))
	for _, e := range ledger.Entries {
		entries = append(entries, map[string]any{
			"date":        e.Date.Format(dateLayout),
			"description": e.Description,
			"type":        e.Kind,
			"credit":      e.Credit,
			"debit":       e.Debit,
			"balance":     e.Balance,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"worker": map[string]any{
			"id":        ledger.Worker.ID,
			"fullName":  ledger.Worker.FullName,
			"dailyWage": ledger.Worker.DailyWage,
		},
		"startDate": ledger.Start.Format(dateLayout),
		"endDate":   ledger.End.Format(dateLayout),
		"entries":   entries,
		"summary": map[string]any{
			"totalEarned": ledger.Summary.TotalEarned,
			"totalPaid":   ledger.Summary.TotalPaid,
			"balance":     ledger.Summary.Balance,
		},
	})
}

// balances is the ledger overview: every active worker's month-to-date
// earned/paid/balance in one response.
func (h WorkerHandler) balances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.Ledger.MonthBalances(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(balances))
	for _, b := range balances {
		resp = append(resp, map[string]any{
			"workerId":   b.WorkerID,
			"workerName": b.WorkerName,
			"dailyWage":  b.DailyWage,
			"earned":     b.Earned,
			"paid":       b.Paid,
			"balance":    b.Balance,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func toWorkerJSON(wk domain.Worker) map[string]any {
	return map[string]any{
		"id":            wk.ID,
		"fullName":      wk.FullName,
		"phone":         wk.Phone,
		"role":          wk.Role,
		"defaultSiteId": wk.DefaultSiteID,
		"dailyWage":     wk.DailyWage,
		"joiningDate":   wk.JoiningDate.Format(dateLayout),
		"status":        string(wk.Status),
		"createdAt":     wk.CreatedAt.Format(time.RFC3339),
		"updatedAt":     wk.UpdatedAt.Format(time.RFC3339),
	}
}
