package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Note struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content   string             `bson:"content" json:"content"`
	CreatedBy primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	TaskID    primitive.ObjectID `bson:"task" json:"task"`
}

// IsAuthor reports whether the given user wrote the note. Only the author may
// delete a note, manager status is irrelevant here.
func (n *Note) IsAuthor(userID primitive.ObjectID) bool {
	return n.CreatedBy == userID
}
