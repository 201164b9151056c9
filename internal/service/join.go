package service

import (
	"context"

	"github.com/tazhibayda/threads-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// joiner resolves thread references in explicit batch steps. A reference to a
// missing document resolves to nil (single refs) or is dropped (lists).
type joiner struct {
	users       UserStore
	threads     ThreadStore
	communities CommunityStore
}

func (j joiner) authors(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.AuthorSummary, error) {
	users, err := j.users.FindUsersByIDs(ctx, unique(ids))
	if err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]*domain.AuthorSummary, len(users))
	for i := range users {
		out[users[i].ID] = users[i].Summary()
	}
	return out, nil
}

func (j joiner) communitiesOf(ctx context.Context, ts []domain.Thread) (map[primitive.ObjectID]*domain.CommunitySummary, error) {
	var ids []primitive.ObjectID
	for _, t := range ts {
		if t.Community != nil {
			ids = append(ids, *t.Community)
		}
	}
	out := make(map[primitive.ObjectID]*domain.CommunitySummary)
	if len(ids) == 0 {
		return out, nil
	}
	cs, err := j.communities.FindCommunitiesByIDs(ctx, unique(ids))
	if err != nil {
		return nil, err
	}
	for i := range cs {
		out[cs[i].ID] = cs[i].Summary()
	}
	return out, nil
}

// threadsByID loads ids and returns them in the order of ids, skipping missing ones.
func (j joiner) threadsByID(ctx context.Context, ids []primitive.ObjectID) ([]domain.Thread, error) {
	if len(ids) == 0 {
		return []domain.Thread{}, nil
	}
	found, err := j.threads.FindThreadsByIDs(ctx, unique(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]domain.Thread, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}
	out := make([]domain.Thread, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// expand builds views for ts with author, community and replies (each reply
// with its author) resolved.
func (j joiner) expand(ctx context.Context, ts []domain.Thread) ([]domain.ThreadView, error) {
	views := make([]domain.ThreadView, 0, len(ts))
	if len(ts) == 0 {
		return views, nil
	}

	communities, err := j.communitiesOf(ctx, ts)
	if err != nil {
		return nil, err
	}
	children, err := j.threadsByID(ctx, domain.ChildIDs(ts))
	if err != nil {
		return nil, err
	}
	childByID := make(map[primitive.ObjectID]domain.Thread, len(children))
	authorIDs := make([]primitive.ObjectID, 0, len(ts)+len(children))
	for _, t := range ts {
		authorIDs = append(authorIDs, t.Author)
	}
	for _, c := range children {
		childByID[c.ID] = c
		authorIDs = append(authorIDs, c.Author)
	}
	authors, err := j.authors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	for _, t := range ts {
		v := domain.NewThreadView(t)
		v.Author = authors[t.Author]
		if t.Community != nil {
			v.Community = communities[*t.Community]
		}
		for _, id := range t.Children {
			c, ok := childByID[id]
			if !ok {
				continue
			}
			cv := domain.NewThreadView(c)
			cv.Author = authors[c.Author]
			v.Children = append(v.Children, cv)
		}
		views = append(views, v)
	}
	return views, nil
}

func unique(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
