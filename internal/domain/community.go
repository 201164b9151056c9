package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Community is read only; only its display fields are ever resolved.
type Community struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ExternalID string             `bson:"external_id"   json:"id"`
	Username   string             `bson:"username"      json:"username"`
	Name       string             `bson:"name"          json:"name"`
	Image      string             `bson:"image"         json:"image"`
	Bio        string             `bson:"bio"           json:"bio"`
}

func (c *Community) Summary() *CommunitySummary {
	if c == nil {
		return nil
	}
	return &CommunitySummary{ID: c.ID, ExternalID: c.ExternalID, Name: c.Name, Image: c.Image}
}
