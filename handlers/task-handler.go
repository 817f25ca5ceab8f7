package handlers

import (
	"encoding/json"
	"net/http"

	"uptask-project/backend/middleware"
	"uptask-project/backend/models"
	"uptask-project/backend/services"
)

type TaskHandler struct {
	TaskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{TaskService: taskService}
}

type taskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (tr *taskRequest) validate() string {
	if tr.Name == "" {
		return "Task name is required"
	}
	if tr.Description == "" {
		return "Task description is required"
	}
	return ""
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
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

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if msg := req.validate(); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	task, err := h.TaskService.CreateTask(r.Context(), project, user.ID, req.Name, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Task created",
		"task":    task,
	})
}

func (h *TaskHandler) GetProjectTasks(w http.ResponseWriter, r *http.Request) {
	project, err := middleware.ProjectFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Project not resolved")
		return
	}

	tasks, err := h.TaskService.GetProjectTasks(r.Context(), project)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	task, err := middleware.TaskFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Task not resolved")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
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
	task, err := middleware.TaskFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Task not resolved")
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if msg := req.validate(); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.TaskService.UpdateTask(r.Context(), project, task, user.ID, req.Name, req.Description); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Task updated")
}

func (h *TaskHandler) ChangeTaskStatus(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	task, err := middleware.TaskFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Task not resolved")
		return
	}

	var req struct {
		Status models.TaskStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	updated, err := h.TaskService.ChangeTaskStatus(r.Context(), task, user.ID, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Task status updated",
		"task":    updated,
	})
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
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
	task, err := middleware.TaskFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Task not resolved")
		return
	}

	if err := h.TaskService.DeleteTask(r.Context(), project, task, user.ID); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Task deleted")
}
