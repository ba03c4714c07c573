package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/evetodo/eve-server/internal/server/models"
)

type projectRequest struct {
	Shortcode string `json:"shortcode"`
	Name      string `json:"name"`
}

type projectResponse struct {
	ID        int64  `json:"id"`
	Shortcode string `json:"shortcode"`
	Name      string `json:"name"`
}

func toProjectResponse(p *models.Project) projectResponse {
	return projectResponse{ID: p.ID, Shortcode: p.Shortcode, Name: p.Name}
}

func (h *Handlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.requireAccount(w, r)
	if !ok {
		return
	}

	projects, err := h.projects.List(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]projectResponse, 0, len(projects))
	for i := range projects {
		resp = append(resp, toProjectResponse(&projects[i]))
	}
	writeData(w, resp)
}

func (h *Handlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.requireAccount(w, r)
	if !ok {
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	project, err := h.projects.Create(r.Context(), accountID, req.Shortcode, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, toProjectResponse(project))
}

// NotImplemented answers endpoints that are routed but not built yet.
func (h *Handlers) NotImplemented(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not yet implemented.")
}
