package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Project struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Client      string               `bson:"client" json:"client"`
	Description string               `bson:"description" json:"description"`
	ManagerID   primitive.ObjectID   `bson:"manager" json:"manager"`
	Team        []primitive.ObjectID `bson:"team" json:"team"`
	Tasks       []primitive.ObjectID `bson:"tasks" json:"tasks"`
}

// IsManager reports whether the given user owns the project.
func (p *Project) IsManager(userID primitive.ObjectID) bool {
	return p.ManagerID == userID
}

// InTeam reports whether the given user is a team member.
func (p *Project) InTeam(userID primitive.ObjectID) bool {
	for _, member := range p.Team {
		if member == userID {
			return true
		}
	}
	return false
}

// HasAccess reports whether the given user may read the project and its tasks.
// Managers own the project; team members have access without ownership.
func (p *Project) HasAccess(userID primitive.ObjectID) bool {
	return p.IsManager(userID) || p.InTeam(userID)
}
