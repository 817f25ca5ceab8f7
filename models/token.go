package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenTTL is enforced by a TTL index on createdAt, the store garbage-collects
// expired tokens so an expired code is indistinguishable from a wrong one.
const TokenTTL = 10 * time.Minute

// Token is a one-time verification code proving control of an email address.
// The same collection serves account confirmation and password reset.
type Token struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthToken string             `bson:"authToken" json:"authToken"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
