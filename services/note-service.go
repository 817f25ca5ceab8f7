package services

import (
	"context"
	"fmt"

	"uptask-project/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type NoteService struct {
	NotesCollection Collection
	TasksCollection Collection
}

func NewNoteService(notesCollection, tasksCollection Collection) *NoteService {
	return &NoteService{
		NotesCollection: notesCollection,
		TasksCollection: tasksCollection,
	}
}

// CreateNote inserts a note under the task and appends its id to the task's
// notes list. Anyone with project access may write notes.
func (s *NoteService) CreateNote(ctx context.Context, task *models.Task, actorID primitive.ObjectID, content string) (*models.Note, error) {
	note := &models.Note{
		ID:        primitive.NewObjectID(),
		Content:   content,
		CreatedBy: actorID,
		TaskID:    task.ID,
	}

	if _, err := s.NotesCollection.InsertOne(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", ErrInternal)
	}

	update := bson.M{"$push": bson.M{"notes": note.ID}}
	if _, err := s.TasksCollection.UpdateOne(ctx, bson.M{"_id": task.ID}, update); err != nil {
		return nil, fmt.Errorf("failed to register note on task: %w", ErrInternal)
	}

	return note, nil
}

// GetTaskNotes lists the notes of the resolved task.
func (s *NoteService) GetTaskNotes(ctx context.Context, task *models.Task) ([]models.Note, error) {
	cursor, err := s.NotesCollection.Find(ctx, bson.M{"task": task.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notes: %w", ErrInternal)
	}
	defer cursor.Close(ctx)

	notes := []models.Note{}
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode notes: %w", ErrInternal)
	}

	return notes, nil
}

// DeleteNote removes a note and its entry in the task's notes list. Author
// only, the project manager has no say here.
func (s *NoteService) DeleteNote(ctx context.Context, task *models.Task, actorID primitive.ObjectID, noteID string) error {
	objectID, err := primitive.ObjectIDFromHex(noteID)
	if err != nil {
		return fmt.Errorf("invalid note ID format: %w", ErrInvalidRequest)
	}

	var note models.Note
	if err := s.NotesCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&note); err != nil {
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf("note not found: %w", ErrNotFound)
		}
		return fmt.Errorf("error fetching note: %w", ErrInternal)
	}

	if note.TaskID != task.ID {
		return fmt.Errorf("note does not belong to this task: %w", ErrInvalidRequest)
	}

	if !note.IsAuthor(actorID) {
		return fmt.Errorf("only the author can delete the note: %w", ErrUnauthorized)
	}

	if _, err := s.NotesCollection.DeleteOne(ctx, bson.M{"_id": note.ID}); err != nil {
		return fmt.Errorf("failed to delete note: %w", ErrInternal)
	}

	update := bson.M{"$pull": bson.M{"notes": note.ID}}
	if _, err := s.TasksCollection.UpdateOne(ctx, bson.M{"_id": task.ID}, update); err != nil {
		return fmt.Errorf("failed to unregister note from task: %w", ErrInternal)
	}

	return nil
}
