package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is keyed by ExternalID, the id issued by the identity provider.
// ID is the internal document id threads reference as their author.
type User struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	ExternalID  string               `bson:"external_id"   json:"id"`
	Username    string               `bson:"username"      json:"username"` // always lowercase
	Name        string               `bson:"name"          json:"name"`
	Bio         string               `bson:"bio"           json:"bio"`
	Image       string               `bson:"image"         json:"image"`
	Onboarded   bool                 `bson:"onboarded"     json:"onboarded"`
	Threads     []primitive.ObjectID `bson:"threads"       json:"threads"`
	Communities []primitive.ObjectID `bson:"communities"   json:"communities"`
	CreatedAt   time.Time            `bson:"created_at"    json:"created_at"`
}

// Profile is the set of fields a profile save writes.
type Profile struct {
	ExternalID string
	Username   string
	Name       string
	Bio        string
	Image      string
}

func (u *User) Summary() *AuthorSummary {
	if u == nil {
		return nil
	}
	return &AuthorSummary{ID: u.ID, ExternalID: u.ExternalID, Name: u.Name, Image: u.Image}
}
