package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Views returned to the presentation layer. References are resolved in place;
// a reference to a document that no longer exists resolves to nil.

type AuthorSummary struct {
	ID         primitive.ObjectID `json:"_id"`
	ExternalID string             `json:"id"`
	Name       string             `json:"name"`
	Image      string             `json:"image"`
}

type CommunitySummary struct {
	ID         primitive.ObjectID `json:"_id"`
	ExternalID string             `json:"id"`
	Name       string             `json:"name"`
	Image      string             `json:"image"`
}

type ThreadView struct {
	ID        primitive.ObjectID  `json:"_id"`
	Text      string              `json:"text"`
	ParentID  *primitive.ObjectID `json:"parentId,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
	Author    *AuthorSummary      `json:"author"`
	Community *CommunitySummary   `json:"community"`
	Children  []ThreadView        `json:"comments"` // resolved replies
}

// NewThreadView copies the thread's own fields; references are left unresolved.
func NewThreadView(t Thread) ThreadView {
	return ThreadView{
		ID:        t.ID,
		Text:      t.Text,
		ParentID:  t.ParentID,
		CreatedAt: t.CreatedAt,
		Children:  []ThreadView{},
	}
}

type UserThreads struct {
	User    User         `json:"user"`
	Threads []ThreadView `json:"threads"`
}

type UserProfile struct {
	User        User               `json:"user"`
	Communities []CommunitySummary `json:"communities"`
}

type UserPage struct {
	Users   []User `json:"users"`
	HasMore bool   `json:"isNext"`
}

type FeedPage struct {
	Posts   []ThreadView `json:"posts"`
	HasMore bool         `json:"isNext"`
}
