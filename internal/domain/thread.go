package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Thread struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"       json:"_id"`
	Text      string               `bson:"text"                json:"text"`
	Author    primitive.ObjectID   `bson:"author"              json:"author"`
	ParentID  *primitive.ObjectID  `bson:"parent_id,omitempty" json:"parent_id,omitempty"` // nil for top-level posts
	Community *primitive.ObjectID  `bson:"community,omitempty" json:"community,omitempty"`
	Children  []primitive.ObjectID `bson:"children"            json:"children"` // replies
	CreatedAt time.Time            `bson:"created_at"          json:"created_at"`
}

// ChildIDs returns the union of the children of ts, first occurrence order.
func ChildIDs(ts []Thread) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{})
	var out []primitive.ObjectID
	for _, t := range ts {
		for _, id := range t.Children {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
