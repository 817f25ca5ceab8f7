package handlers

import (
	"encoding/json"
	"net/http"

	"uptask-project/backend/middleware"
	"uptask-project/backend/services"

	"github.com/gorilla/mux"
)

type NoteHandler struct {
	NoteService *services.NoteService
}

func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{NoteService: noteService}
}

func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
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
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		writeMessage(w, http.StatusBadRequest, "Note content is required")
		return
	}

	note, err := h.NoteService.CreateNote(r.Context(), task, user.ID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Note created",
		"note":    note,
	})
}

func (h *NoteHandler) GetTaskNotes(w http.ResponseWriter, r *http.Request) {
	task, err := middleware.TaskFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Task not resolved")
		return
	}

	notes, err := h.NoteService.GetTaskNotes(r.Context(), task)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"notes": notes})
}

func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
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

	noteID := mux.Vars(r)["noteId"]
	if err := h.NoteService.DeleteNote(r.Context(), task, user.ID, noteID); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Note deleted")
}
