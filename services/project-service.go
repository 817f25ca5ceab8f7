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

type ProjectService struct {
	ProjectsCollection Collection
	TasksCollection    Collection
	NotesCollection    Collection
	UsersCollection    Collection
}

func NewProjectService(projectsCollection, tasksCollection, notesCollection, usersCollection Collection) *ProjectService {
	return &ProjectService{
		ProjectsCollection: projectsCollection,
		TasksCollection:    tasksCollection,
		NotesCollection:    notesCollection,
		UsersCollection:    usersCollection,
	}
}

// CreateProject creates a project owned by the calling user.
func (s *ProjectService) CreateProject(ctx context.Context, name, client, description string, managerID primitive.ObjectID) (*models.Project, error) {
	project := &models.Project{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Client:      client,
		Description: description,
		ManagerID:   managerID,
		Team:        []primitive.ObjectID{},
		Tasks:       []primitive.ObjectID{},
	}

	if _, err := s.ProjectsCollection.InsertOne(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", ErrInternal)
	}

	return project, nil
}

// GetProjects lists the projects the user manages.
func (s *ProjectService) GetProjects(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	cursor, err := s.ProjectsCollection.Find(ctx, bson.M{"manager": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", ErrInternal)
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", ErrInternal)
	}

	return projects, nil
}

// GetProjectByID fetches a project regardless of who is asking, access is
// decided by the resolution middleware.
func (s *ProjectService) GetProjectByID(ctx context.Context, projectID string) (*models.Project, error) {
	objectID, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID format: %w", ErrInvalidRequest)
	}

	var project models.Project
	if err := s.ProjectsCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&project); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("project not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching project: %w", ErrInternal)
	}

	return &project, nil
}

// UpdateProject changes name, client and description. Manager only.
func (s *ProjectService) UpdateProject(ctx context.Context, project *models.Project, actorID primitive.ObjectID, name, client, description string) error {
	if !project.IsManager(actorID) {
		return fmt.Errorf("only the manager can update the project: %w", ErrUnauthorized)
	}

	update := bson.M{"$set": bson.M{"name": name, "client": client, "description": description}}
	if _, err := s.ProjectsCollection.UpdateOne(ctx, bson.M{"_id": project.ID}, update); err != nil {
		return fmt.Errorf("failed to update project: %w", ErrInternal)
	}

	return nil
}

// DeleteProject removes the project and cascades over its tasks and their
// notes, children first so no orphan ever references a deleted parent.
func (s *ProjectService) DeleteProject(ctx context.Context, project *models.Project, actorID primitive.ObjectID) error {
	if !project.IsManager(actorID) {
		return fmt.Errorf("only the manager can delete the project: %w", ErrUnauthorized)
	}

	cursor, err := s.TasksCollection.Find(ctx, bson.M{"project": project.ID})
	if err != nil {
		return fmt.Errorf("failed to enumerate project tasks: %w", ErrInternal)
	}

	taskIDs := []primitive.ObjectID{}
	for cursor.Next(ctx) {
		var task models.Task
		if err := cursor.Decode(&task); err != nil {
			cursor.Close(ctx)
			return fmt.Errorf("failed to decode task: %w", ErrInternal)
		}
		taskIDs = append(taskIDs, task.ID)
	}
	cursor.Close(ctx)

	if len(taskIDs) > 0 {
		if _, err := s.NotesCollection.DeleteMany(ctx, bson.M{"task": bson.M{"$in": taskIDs}}); err != nil {
			return fmt.Errorf("failed to delete task notes: %w", ErrInternal)
		}
		if _, err := s.TasksCollection.DeleteMany(ctx, bson.M{"project": project.ID}); err != nil {
			return fmt.Errorf("failed to delete project tasks: %w", ErrInternal)
		}
	}

	if _, err := s.ProjectsCollection.DeleteOne(ctx, bson.M{"_id": project.ID}); err != nil {
		return fmt.Errorf("failed to delete project: %w", ErrInternal)
	}

	logging.Logger.Infof("Event ID: PROJECT_DELETED, Description: Project '%s' deleted with %d tasks", project.ID.Hex(), len(taskIDs))
	return nil
}

// FindMemberByEmail looks up a user so the manager can add them to the team.
func (s *ProjectService) FindMemberByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := s.UsersCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return models.User{}, fmt.Errorf("user not found: %w", ErrNotFound)
	}

	user.Password = ""
	return user, nil
}

// GetTeam returns the project's team members.
func (s *ProjectService) GetTeam(ctx context.Context, project *models.Project) ([]models.User, error) {
	members := []models.User{}
	if len(project.Team) == 0 {
		return members, nil
	}

	cursor, err := s.UsersCollection.Find(ctx, bson.M{"_id": bson.M{"$in": project.Team}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team members: %w", ErrInternal)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode team members: %w", ErrInternal)
	}

	for i := range members {
		members[i].Password = ""
	}

	return members, nil
}

// AddTeamMember grants a user access to the project. Manager only. The
// manager can never appear in their own team.
func (s *ProjectService) AddTeamMember(ctx context.Context, project *models.Project, actorID, userID primitive.ObjectID) error {
	if !project.IsManager(actorID) {
		return fmt.Errorf("only the manager can manage the team: %w", ErrUnauthorized)
	}

	var user models.User
	if err := s.UsersCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return fmt.Errorf("user not found: %w", ErrNotFound)
	}

	if project.IsManager(userID) {
		return fmt.Errorf("the manager is already the owner of the project: %w", ErrConflict)
	}
	if project.InTeam(userID) {
		return fmt.Errorf("the user is already in the project team: %w", ErrConflict)
	}

	update := bson.M{"$push": bson.M{"team": userID}}
	if _, err := s.ProjectsCollection.UpdateOne(ctx, bson.M{"_id": project.ID}, update); err != nil {
		return fmt.Errorf("failed to add team member: %w", ErrInternal)
	}

	return nil
}

// RemoveTeamMember revokes a user's access to the project. Manager only.
func (s *ProjectService) RemoveTeamMember(ctx context.Context, project *models.Project, actorID primitive.ObjectID, userID string) error {
	if !project.IsManager(actorID) {
		return fmt.Errorf("only the manager can manage the team: %w", ErrUnauthorized)
	}

	memberID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format: %w", ErrInvalidRequest)
	}

	if !project.InTeam(memberID) {
		return fmt.Errorf("the user is not in the project team: %w", ErrConflict)
	}

	update := bson.M{"$pull": bson.M{"team": memberID}}
	if _, err := s.ProjectsCollection.UpdateOne(ctx, bson.M{"_id": project.ID}, update); err != nil {
		return fmt.Errorf("failed to remove team member: %w", ErrInternal)
	}

	return nil
}
