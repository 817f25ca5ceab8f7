package handlers

import (
	"encoding/json"
	"net/http"

	"uptask-project/backend/middleware"
	"uptask-project/backend/services"
)

type ProjectHandler struct {
	ProjectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{ProjectService: projectService}
}

type projectRequest struct {
	Name        string `json:"name"`
	Client      string `json:"client"`
	Description string `json:"description"`
}

func (pr *projectRequest) validate() string {
	if pr.Name == "" {
		return "Project name is required"
	}
	if pr.Client == "" {
		return "Client name is required"
	}
	if pr.Description == "" {
		return "Project description is required"
	}
	return ""
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if msg := req.validate(); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	project, err := h.ProjectService.CreateProject(r.Context(), req.Name, req.Client, req.Description, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Project created",
		"project": project,
	})
}

func (h *ProjectHandler) GetProjects(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	projects, err := h.ProjectService.GetProjects(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	project, err := middleware.ProjectFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Project not resolved")
		return
	}

	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	project, err := middleware.ProjectFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Project not resolved")
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if msg := req.validate(); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.ProjectService.UpdateProject(r.Context(), project, user.ID, req.Name, req.Client, req.Description); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Project updated")
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	project, err := middleware.ProjectFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Project not resolved")
		return
	}

	if err := h.ProjectService.DeleteProject(r.Context(), project, user.ID); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Project deleted")
}
