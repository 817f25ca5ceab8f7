package services

import (
	"context"
	"testing"

	"uptask-project/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateTaskManagerOnly(t *testing.T) {
	manager := primitive.NewObjectID()
	member := primitive.NewObjectID()
	project := &models.Project{
		ID:        primitive.NewObjectID(),
		ManagerID: manager,
		Team:      []primitive.ObjectID{member},
		Tasks:     []primitive.ObjectID{},
	}
	projects := newFakeCollection(project)
	tasks := newFakeCollection()
	s := NewTaskService(tasks, projects, newFakeCollection())

	_, err := s.CreateTask(context.Background(), project, member, "Deploy", "ship it")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, tasks.docs)

	task, err := s.CreateTask(context.Background(), project, manager, "Deploy", "ship it")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Equal(t, 1, tasks.matching(bson.M{"_id": task.ID}))
	assert.True(t, containsValue(projects.docs[0]["tasks"], task.ID))
}

func TestChangeTaskStatusAppendsAuditTrail(t *testing.T) {
	userA := primitive.NewObjectID()
	userB := primitive.NewObjectID()
	task := models.Task{
		ID:                  primitive.NewObjectID(),
		Name:                "Deploy",
		ProjectID:           primitive.NewObjectID(),
		Status:              models.StatusPending,
		LastStatusChangedBy: []models.StatusChange{},
		Notes:               []primitive.ObjectID{},
	}
	tasks := newFakeCollection(task)
	s := NewTaskService(tasks, newFakeCollection(), newFakeCollection())

	updated, err := s.ChangeTaskStatus(context.Background(), &task, userA, models.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)

	updated, err = s.ChangeTaskStatus(context.Background(), updated, userB, models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)

	require.Len(t, updated.LastStatusChangedBy, 2)
	assert.Equal(t, models.StatusChange{UserID: userA, Status: models.StatusInProgress}, updated.LastStatusChangedBy[0])
	assert.Equal(t, models.StatusChange{UserID: userB, Status: models.StatusCompleted}, updated.LastStatusChangedBy[1])
}

func TestChangeTaskStatusRejectsUnknownStatus(t *testing.T) {
	task := models.Task{ID: primitive.NewObjectID(), Status: models.StatusPending}
	tasks := newFakeCollection(task)
	s := NewTaskService(tasks, newFakeCollection(), newFakeCollection())

	_, err := s.ChangeTaskStatus(context.Background(), &task, primitive.NewObjectID(), "archived")
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Equal(t, 1, tasks.matching(bson.M{"status": models.StatusPending}))
}

func TestDeleteTaskManagerOnly(t *testing.T) {
	manager := primitive.NewObjectID()
	member := primitive.NewObjectID()
	project := &models.Project{ID: primitive.NewObjectID(), ManagerID: manager, Team: []primitive.ObjectID{member}}
	task := &models.Task{ID: primitive.NewObjectID(), ProjectID: project.ID}
	tasks := newFakeCollection(task)
	s := NewTaskService(tasks, newFakeCollection(project), newFakeCollection())

	err := s.DeleteTask(context.Background(), project, task, member)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Len(t, tasks.docs, 1)
}

func TestDeleteTaskCascades(t *testing.T) {
	manager := primitive.NewObjectID()
	doomed := primitive.NewObjectID()
	kept := primitive.NewObjectID()
	project := &models.Project{
		ID:        primitive.NewObjectID(),
		ManagerID: manager,
		Tasks:     []primitive.ObjectID{doomed, kept},
	}
	task := &models.Task{ID: doomed, ProjectID: project.ID}
	projects := newFakeCollection(project)
	tasks := newFakeCollection(task, models.Task{ID: kept, ProjectID: project.ID})
	notes := newFakeCollection(
		models.Note{ID: primitive.NewObjectID(), Content: "gone", CreatedBy: manager, TaskID: doomed},
		models.Note{ID: primitive.NewObjectID(), Content: "stays", CreatedBy: manager, TaskID: kept},
	)
	s := NewTaskService(tasks, projects, notes)

	require.NoError(t, s.DeleteTask(context.Background(), project, task, manager))

	assert.Equal(t, 0, tasks.matching(bson.M{"_id": doomed}))
	assert.Equal(t, 1, tasks.matching(bson.M{"_id": kept}))
	assert.Equal(t, 0, notes.matching(bson.M{"task": doomed}))
	assert.Equal(t, 1, notes.matching(bson.M{"task": kept}))
	assert.False(t, containsValue(projects.docs[0]["tasks"], doomed))
	assert.True(t, containsValue(projects.docs[0]["tasks"], kept))
}
