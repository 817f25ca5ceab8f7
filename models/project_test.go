package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProjectAccess(t *testing.T) {
	manager := primitive.NewObjectID()
	member := primitive.NewObjectID()
	outsider := primitive.NewObjectID()

	project := Project{
		ID:        primitive.NewObjectID(),
		Name:      "Website redesign",
		ManagerID: manager,
		Team:      []primitive.ObjectID{member},
	}

	assert.True(t, project.IsManager(manager))
	assert.False(t, project.IsManager(member))

	assert.True(t, project.InTeam(member))
	assert.False(t, project.InTeam(manager))
	assert.False(t, project.InTeam(outsider))

	assert.True(t, project.HasAccess(manager))
	assert.True(t, project.HasAccess(member))
	assert.False(t, project.HasAccess(outsider))
}

func TestProjectAccessEmptyTeam(t *testing.T) {
	manager := primitive.NewObjectID()
	project := Project{ManagerID: manager}

	assert.True(t, project.HasAccess(manager))
	assert.False(t, project.HasAccess(primitive.NewObjectID()))
}

func TestTaskStatusIsValid(t *testing.T) {
	tests := []struct {
		status TaskStatus
		valid  bool
	}{
		{StatusPending, true},
		{StatusOnHold, true},
		{StatusInProgress, true},
		{StatusUnderReview, true},
		{StatusCompleted, true},
		{TaskStatus(""), false},
		{TaskStatus("done"), false},
		{TaskStatus("in progress"), false},
	}
	for _, tc := range tests {
		if got := tc.status.IsValid(); got != tc.valid {
			t.Errorf("IsValid(%q) = %v, want %v", tc.status, got, tc.valid)
		}
	}
}

func TestTaskBelongsTo(t *testing.T) {
	projectID := primitive.NewObjectID()
	task := Task{ID: primitive.NewObjectID(), ProjectID: projectID}

	assert.True(t, task.BelongsTo(projectID))
	assert.False(t, task.BelongsTo(primitive.NewObjectID()))
}

func TestNoteIsAuthor(t *testing.T) {
	author := primitive.NewObjectID()
	note := Note{CreatedBy: author}

	assert.True(t, note.IsAuthor(author))
	assert.False(t, note.IsAuthor(primitive.NewObjectID()))
}
