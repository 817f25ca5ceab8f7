package handlers

import (
	"encoding/json"
	"net/http"

	"uptask-project/backend/middleware"
	"uptask-project/backend/services"
	"uptask-project/backend/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TeamHandler struct {
	ProjectService *services.ProjectService
}

func NewTeamHandler(projectService *services.ProjectService) *TeamHandler {
	return &TeamHandler{ProjectService: projectService}
}

func (h *TeamHandler) FindMemberByEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.ProjectService.FindMemberByEmail(r.Context(), utils.NormalizeEmail(req.Email))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *TeamHandler) GetProjectTeam(w http.ResponseWriter, r *http.Request) {
	project, err := middleware.ProjectFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Project not resolved")
		return
	}

	team, err := h.ProjectService.GetTeam(r.Context(), project)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) AddTeamMember(w http.ResponseWriter, r *http.Request) {
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

	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeMessage(w, http.StatusBadRequest, "User ID is required")
		return
	}

	memberID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	if err := h.ProjectService.AddTeamMember(r.Context(), project, user.ID, memberID); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "User added to the project team")
}

func (h *TeamHandler) RemoveTeamMember(w http.ResponseWriter, r *http.Request) {
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

	userID := mux.Vars(r)["userId"]
	if err := h.ProjectService.RemoveTeamMember(r.Context(), project, user.ID, userID); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "User removed from the project team")
}
