package middleware

import (
	"context"
	"errors"
	"net/http"

	"uptask-project/backend/models"
	"uptask-project/backend/services"

	"github.com/gorilla/mux"
)

// TaskResolver loads a task by its path identifier.
// *services.TaskService satisfies it.
type TaskResolver interface {
	GetTaskByID(ctx context.Context, taskID string) (*models.Task, error)
}

// ResolveTask loads the {taskId} path entity, verifies it belongs to the
// already resolved project and attaches it to the request context. The
// mismatch check runs before any authorization.
func ResolveTask(tasks TaskResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			project, err := ProjectFromContext(r.Context())
			if err != nil {
				respondMessage(w, http.StatusInternalServerError, "Project not resolved")
				return
			}

			taskID := mux.Vars(r)["taskId"]
			task, err := tasks.GetTaskByID(r.Context(), taskID)
			if err != nil {
				switch {
				case errors.Is(err, services.ErrInvalidRequest):
					respondMessage(w, http.StatusBadRequest, "Invalid task ID")
				case errors.Is(err, services.ErrNotFound):
					respondMessage(w, http.StatusNotFound, "Task not found")
				default:
					respondMessage(w, http.StatusInternalServerError, "Error fetching the task")
				}
				return
			}

			if !task.BelongsTo(project.ID) {
				respondMessage(w, http.StatusBadRequest, "Invalid request")
				return
			}

			next.ServeHTTP(w, r.WithContext(withTask(r.Context(), task)))
		})
	}
}
