package middleware

import (
	"context"
	"fmt"

	"uptask-project/backend/models"
)

type contextKey string

const (
	userContextKey    contextKey = "user"
	projectContextKey contextKey = "project"
	taskContextKey    contextKey = "task"
)

// UserFromContext returns the authenticated user attached by Authenticate.
func UserFromContext(ctx context.Context) (models.User, error) {
	user, ok := ctx.Value(userContextKey).(models.User)
	if !ok {
		return models.User{}, fmt.Errorf("user not found in request context")
	}
	return user, nil
}

// ProjectFromContext returns the project attached by ResolveProject.
func ProjectFromContext(ctx context.Context) (*models.Project, error) {
	project, ok := ctx.Value(projectContextKey).(*models.Project)
	if !ok {
		return nil, fmt.Errorf("project not found in request context")
	}
	return project, nil
}

// TaskFromContext returns the task attached by ResolveTask.
func TaskFromContext(ctx context.Context) (*models.Task, error) {
	task, ok := ctx.Value(taskContextKey).(*models.Task)
	if !ok {
		return nil, fmt.Errorf("task not found in request context")
	}
	return task, nil
}

func withUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func withProject(ctx context.Context, project *models.Project) context.Context {
	return context.WithValue(ctx, projectContextKey, project)
}

func withTask(ctx context.Context, task *models.Task) context.Context {
	return context.WithValue(ctx, taskContextKey, task)
}
