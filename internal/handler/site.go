package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/salmanfarismn/LaborLog/internal/domain"
	"github.com/salmanfarismn/LaborLog/internal/repository"
)

type SiteHandler struct {
	Repo    repository.SiteRepository
	Workers repository.WorkerRepository
}

func (h SiteHandler) RegisterRoutes(r chi.Router) {
	r.Get("/sites", h.list)
	r.Post("/sites", h.create)
	r.Get("/sites/{id}", h.get)
	r.Put("/sites/{id}", h.update)
	r.Delete("/sites/{id}", h.delete)
	r.Post("/sites/{id}/toggle-status", h.toggleStatus)
}

type siteRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

func (req siteRequest) params() (repository.CreateSiteParams, string) {
	if req.Name == "" {
		return repository.CreateSiteParams{}, "name is required"
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return repository.CreateSiteParams{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		Active:      active,
	}, ""
}

func (h SiteHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, s := range items {
		resp = append(resp, toSiteJSON(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h SiteHandler) create(w http.ResponseWriter, r *http.Request) {
	var req siteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	params, problem := req.params()
	if problem != "" {
		writeError(w, http.StatusBadRequest, problem)
		return
	}
	s, err := h.Repo.Create(r.Context(), params)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSiteJSON(*s))
}

func (h SiteHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid site id")
		return
	}
	s, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSiteJSON(*s))
}

func (h SiteHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid site id")
		return
	}
	var req siteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	params, problem := req.params()
	if problem != "" {
		writeError(w, http.StatusBadRequest, problem)
		return
	}
	s, err := h.Repo.Update(r.Context(), id, params)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSiteJSON(*s))
}

// delete clears workers' default-site pointers first, then removes the site.
// Two sequential store operations; workers referencing the site survive.
func (h SiteHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid site id")
		return
	}
	if err := h.Workers.DetachSite(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h SiteHandler) toggleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid site id")
		return
	}
	s, err := h.Repo.ToggleActive(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSiteJSON(*s))
}

func toSiteJSON(s domain.Site) map[string]any {
	return map[string]any{
		"id":          s.ID,
		"name":        s.Name,
		"address":     s.Address,
		"description": s.Description,
		"active":      s.Active,
		"createdAt":   s.CreatedAt.Format(time.RFC3339),
		"updatedAt":   s.UpdatedAt.Format(time.RFC3339),
	}
}
