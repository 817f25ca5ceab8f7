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

func TestCreateNoteRegistersOnTask(t *testing.T) {
	author := primitive.NewObjectID()
	task := &models.Task{ID: primitive.NewObjectID(), Notes: []primitive.ObjectID{}}
	tasks := newFakeCollection(task)
	notes := newFakeCollection()
	s := NewNoteService(notes, tasks)

	note, err := s.CreateNote(context.Background(), task, author, "remember the firewall rule")
	require.NoError(t, err)

	assert.Equal(t, 1, notes.matching(bson.M{"_id": note.ID}))
	assert.True(t, containsValue(tasks.docs[0]["notes"], note.ID))
}

func TestDeleteNoteAuthorOnly(t *testing.T) {
	author := primitive.NewObjectID()
	manager := primitive.NewObjectID()
	task := &models.Task{ID: primitive.NewObjectID(), Notes: []primitive.ObjectID{}}
	note := models.Note{ID: primitive.NewObjectID(), Content: "mine", CreatedBy: author, TaskID: task.ID}
	notes := newFakeCollection(note)
	tasks := newFakeCollection(task)
	s := NewNoteService(notes, tasks)

	err := s.DeleteNote(context.Background(), task, manager, note.ID.Hex())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Len(t, notes.docs, 1)

	require.NoError(t, s.DeleteNote(context.Background(), task, author, note.ID.Hex()))
	assert.Empty(t, notes.docs)
	assert.False(t, containsValue(tasks.docs[0]["notes"], note.ID))
}

func TestDeleteNoteWrongTask(t *testing.T) {
	author := primitive.NewObjectID()
	task := &models.Task{ID: primitive.NewObjectID()}
	note := models.Note{ID: primitive.NewObjectID(), CreatedBy: author, TaskID: primitive.NewObjectID()}
	notes := newFakeCollection(note)
	s := NewNoteService(notes, newFakeCollection(task))

	err := s.DeleteNote(context.Background(), task, author, note.ID.Hex())
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Len(t, notes.docs, 1)
}

func TestDeleteNoteUnknown(t *testing.T) {
	task := &models.Task{ID: primitive.NewObjectID()}
	s := NewNoteService(newFakeCollection(), newFakeCollection(task))

	err := s.DeleteNote(context.Background(), task, primitive.NewObjectID(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.DeleteNote(context.Background(), task, primitive.NewObjectID(), "not-an-id")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
