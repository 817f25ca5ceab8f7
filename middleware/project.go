package middleware

import (
	"context"
	"errors"
	"net/http"

	"uptask-project/backend/models"
	"uptask-project/backend/services"

	"github.com/gorilla/mux"
)

// ProjectResolver loads a project by its path identifier.
// *services.ProjectService satisfies it.
type ProjectResolver interface {
	GetProjectByID(ctx context.Context, projectID string) (*models.Project, error)
}

// ResolveProject loads the {projectId} path entity, denies actors without
// access and attaches the project to the request context. Resolution happens
// before any authorization so the manager identity is available downstream.
func ResolveProject(projects ProjectResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := UserFromContext(r.Context())
			if err != nil {
				respondMessage(w, http.StatusUnauthorized, "Not authorized")
				return
			}

			projectID := mux.Vars(r)["projectId"]
			project, err := projects.GetProjectByID(r.Context(), projectID)
			if err != nil {
				switch {
				case errors.Is(err, services.ErrInvalidRequest):
					respondMessage(w, http.StatusBadRequest, "Invalid project ID")
				case errors.Is(err, services.ErrNotFound):
					respondMessage(w, http.StatusNotFound, "Project not found")
				default:
					respondMessage(w, http.StatusInternalServerError, "Error fetching the project")
				}
				return
			}

			if !project.HasAccess(user.ID) {
				respondMessage(w, http.StatusUnauthorized, "Not authorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(withProject(r.Context(), project)))
		})
	}
}
