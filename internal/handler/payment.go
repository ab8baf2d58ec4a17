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

type PaymentHandler struct {
	Repo    repository.PaymentRepository
	Summary service.SummaryService
}

func (h PaymentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/payments", h.list)
	r.Post("/payments", h.create)
	r.Put("/payments/{id}", h.update)
	r.Delete("/payments/{id}", h.delete)
	r.Get("/payments/summary", h.monthlySummary)
}

type paymentRequest struct {
	WorkerID int64  `json:"workerId"`
	Date     string `json:"date"`
	Amount   int64  `json:"amount"`
	Kind     string `json:"kind"`
	Notes    string `json:"notes"`
}

func (req paymentRequest) params() (repository.CreatePaymentParams, string) {
	if req.WorkerID == 0 {
		return repository.CreatePaymentParams{}, "workerId is required"
	}
	if req.Date == "" {
		return repository.CreatePaymentParams{}, "date is required"
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return repository.CreatePaymentParams{}, "invalid date format"
	}
	if req.Amount <= 0 {
		return repository.CreatePaymentParams{}, "amount must be positive"
	}
	kind := domain.PaymentKind(req.Kind)
	if !kind.Valid() {
		return repository.CreatePaymentParams{}, "invalid payment kind"
	}
	return repository.CreatePaymentParams{
		WorkerID: req.WorkerID,
		Date:     req.Date,
		Amount:   req.Amount,
		Kind:     kind,
		Notes:    req.Notes,
	}, ""
}

func (h PaymentHandler) list(w http.ResponseWriter, r *http.Request) {
	workerID, err := parseIDQuery(r, "workerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid workerId")
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

	items, err := h.Repo.List(r.Context(), workerID, start, end)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, p := range items {
		resp = append(resp, toPaymentJSON(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h PaymentHandler) create(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	params, problem := req.params()
	if problem != "" {
		writeError(w, http.StatusBadRequest, problem)
		return
	}
	p, err := h.Repo.Create(r.Context(), params)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentJSON(*p))
}

func (h PaymentHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment id")
		return
	}
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	params, problem := req.params()
	if problem != "" {
		writeError(w, http.StatusBadRequest, problem)
		return
	}
	p, err := h.Repo.Update(r.Context(), id, params)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentJSON(*p))
}

func (h PaymentHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h PaymentHandler) monthlySummary(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year or month")
		return
	}
	summary, err := h.Summary.MonthlyPayments(r.Context(), year, month)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"advance": summary.Advance,
		"salary":  summary.Salary,
		"bonus":   summary.Bonus,
		"other":   summary.Other,
		"total":   summary.Total,
	})
}

func toPaymentJSON(p domain.Payment) map[string]any {
	return map[string]any{
		"id":         p.ID,
		"workerId":   p.WorkerID,
		"workerName": p.WorkerName,
		"date":       p.Date.Format(dateLayout),
		"amount":     p.Amount,
		"kind":       string(p.Kind),
		"notes":      p.Notes,
		"createdAt":  p.CreatedAt.Format(time.RFC3339),
	}
}
