package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type TaskStatus string

const (
	StatusPending     TaskStatus = "pending"
	StatusOnHold      TaskStatus = "hold"
	StatusInProgress  TaskStatus = "progress"
	StatusUnderReview TaskStatus = "review"
	StatusCompleted   TaskStatus = "completed"
)

// IsValid reports whether the status is one of the accepted values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusOnHold, StatusInProgress, StatusUnderReview, StatusCompleted:
		return true
	}
	return false
}

// StatusChange is one entry of a task's status audit trail.
type StatusChange struct {
	UserID primitive.ObjectID `bson:"user" json:"user"`
	Status TaskStatus         `bson:"status" json:"status"`
}

type Task struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name                string               `bson:"name" json:"name"`
	Description         string               `bson:"description" json:"description"`
	ProjectID           primitive.ObjectID   `bson:"project" json:"project"`
	Status              TaskStatus           `bson:"status" json:"status"`
	LastStatusChangedBy []StatusChange       `bson:"lastStatusChangedBy" json:"lastStatusChangedBy"`
	Notes               []primitive.ObjectID `bson:"notes" json:"notes"`
}

// BelongsTo reports whether the task is owned by the given project.
func (t *Task) BelongsTo(projectID primitive.ObjectID) bool {
	return t.ProjectID == projectID
}
