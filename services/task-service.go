package services

import (
	"context"
	"fmt"

	"uptask-project/backend/logging"
	"uptask-project/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TaskService struct {
	TasksCollection    Collection
	ProjectsCollection Collection
	NotesCollection    Collection
}

func NewTaskService(tasksCollection, projectsCollection, notesCollection Collection) *TaskService {
	return &TaskService{
		TasksCollection:    tasksCollection,
		ProjectsCollection: projectsCollection,
		NotesCollection:    notesCollection,
	}
}

// CreateTask inserts a task under the project and appends its id to the
// project's task list. Manager only. Both writes are checked, a failed second
// write surfaces instead of leaving the pair silently half applied.
func (s *TaskService) CreateTask(ctx context.Context, project *models.Project, actorID primitive.ObjectID, name, description string) (*models.Task, error) {
	if !project.IsManager(actorID) {
		return nil, fmt.Errorf("only the manager can create tasks: %w", ErrUnauthorized)
	}

	task := &models.Task{
		ID:                  primitive.NewObjectID(),
		Name:                name,
		Description:         description,
		ProjectID:           project.ID,
		Status:              models.StatusPending,
		LastStatusChangedBy: []models.StatusChange{},
		Notes:               []primitive.ObjectID{},
	}

	if _, err := s.TasksCollection.InsertOne(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", ErrInternal)
	}

	update := bson.M{"$push": bson.M{"tasks": task.ID}}
	if _, err := s.ProjectsCollection.UpdateOne(ctx, bson.M{"_id": project.ID}, update); err != nil {
		return nil, fmt.Errorf("failed to register task on project: %w", ErrInternal)
	}

	return task, nil
}

// GetProjectTasks lists the tasks of the resolved project.
func (s *TaskService) GetProjectTasks(ctx context.Context, project *models.Project) ([]models.Task, error) {
	cursor, err := s.TasksCollection.Find(ctx, bson.M{"project": project.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", ErrInternal)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", ErrInternal)
	}

	return tasks, nil
}

// GetTaskByID fetches a task by path id. Referential consistency against the
// resolved project is checked by the resolution middleware.
func (s *TaskService) GetTaskByID(ctx context.Context, taskID string) (*models.Task, error) {
	objectID, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, fmt.Errorf("invalid task ID format: %w", ErrInvalidRequest)
	}

	var task models.Task
	if err := s.TasksCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&task); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("task not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching task: %w", ErrInternal)
	}

	return &task, nil
}

// UpdateTask changes name and description. Manager only.
func (s *TaskService) UpdateTask(ctx context.Context, project *models.Project, task *models.Task, actorID primitive.ObjectID, name, description string) error {
	if !project.IsManager(actorID) {
		return fmt.Errorf("only the manager can update tasks: %w", ErrUnauthorized)
	}

	update := bson.M{"$set": bson.M{"name": name, "description": description}}
	if _, err := s.TasksCollection.UpdateOne(ctx, bson.M{"_id": task.ID}, update); err != nil {
		return fmt.Errorf("failed to update task: %w", ErrInternal)
	}

	return nil
}

// ChangeTaskStatus moves the task to any status and appends the change to the
// audit trail. Open to everyone with project access, transitions are
// unrestricted.
func (s *TaskService) ChangeTaskStatus(ctx context.Context, task *models.Task, actorID primitive.ObjectID, status models.TaskStatus) (*models.Task, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("unknown task status %q: %w", status, ErrInvalidRequest)
	}

	change := models.StatusChange{UserID: actorID, Status: status}
	update := bson.M{
		"$set":  bson.M{"status": status},
		"$push": bson.M{"lastStatusChangedBy": change},
	}

	result, err := s.TasksCollection.UpdateOne(ctx, bson.M{"_id": task.ID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", ErrInternal)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("task not found: %w", ErrNotFound)
	}

	var updated models.Task
	if err := s.TasksCollection.FindOne(ctx, bson.M{"_id": task.ID}).Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to retrieve updated task: %w", ErrInternal)
	}

	return &updated, nil
}

// DeleteTask removes the task, its notes and its entry in the project's task
// list. Manager only.
func (s *TaskService) DeleteTask(ctx context.Context, project *models.Project, task *models.Task, actorID primitive.ObjectID) error {
	if !project.IsManager(actorID) {
		return fmt.Errorf("only the manager can delete tasks: %w", ErrUnauthorized)
	}

	if _, err := s.NotesCollection.DeleteMany(ctx, bson.M{"task": task.ID}); err != nil {
		return fmt.Errorf("failed to delete task notes: %w", ErrInternal)
	}

	if _, err := s.TasksCollection.DeleteOne(ctx, bson.M{"_id": task.ID}); err != nil {
		return fmt.Errorf("failed to delete task: %w", ErrInternal)
	}

	update := bson.M{"$pull": bson.M{"tasks": task.ID}}
	if _, err := s.ProjectsCollection.UpdateOne(ctx, bson.M{"_id": project.ID}, update); err != nil {
		return fmt.Errorf("failed to unregister task from project: %w", ErrInternal)
	}

	logging.Logger.Infof("Event ID: TASK_DELETED, Description: Task '%s' deleted from project '%s'", task.ID.Hex(), project.ID.Hex())
	return nil
}
