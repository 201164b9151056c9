package service

import (
	"context"

	"github.com/tazhibayda/threads-service/internal/apperr"
	"github.com/tazhibayda/threads-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const opFetchActivity = "failed to fetch activity"

type ActivityService struct {
	users   UserStore
	threads ThreadStore
	join    joiner
}

func NewActivityService(users UserStore, threads ThreadStore) *ActivityService {
	return &ActivityService{
		users:   users,
		threads: threads,
		join:    joiner{users: users, threads: threads},
	}
}

// GetActivity returns replies other users left on userID's threads, newest
// first, each with its author resolved.
func (s *ActivityService) GetActivity(ctx context.Context, userID primitive.ObjectID) ([]domain.ThreadView, error) {
	own, err := s.threads.FindThreadsByAuthor(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(opFetchActivity, err)
	}
	childIDs := domain.ChildIDs(own)
	if len(childIDs) == 0 {
		return []domain.ThreadView{}, nil
	}

	replies, err := s.threads.FindRepliesExcludingAuthor(ctx, childIDs, userID)
	if err != nil {
		return nil, apperr.Wrap(opFetchActivity, err)
	}
	authorIDs := make([]primitive.ObjectID, 0, len(replies))
	for _, r := range replies {
		authorIDs = append(authorIDs, r.Author)
	}
	authors, err := s.join.authors(ctx, authorIDs)
	if err != nil {
		return nil, apperr.Wrap(opFetchActivity, err)
	}

	out := make([]domain.ThreadView, 0, len(replies))
	for _, r := range replies {
		v := domain.NewThreadView(r)
		v.Author = authors[r.Author]
		out = append(out, v)
	}
	return out, nil
}

// GetActivityFor resolves the viewer by external id first. An unknown viewer
// has no activity.
func (s *ActivityService) GetActivityFor(ctx context.Context, externalID string) ([]domain.ThreadView, error) {
	u, err := s.users.FindUserByExternalID(ctx, externalID)
	if err != nil {
		return nil, apperr.Wrap(opFetchActivity, err)
	}
	if u == nil {
		return []domain.ThreadView{}, nil
	}
	return s.GetActivity(ctx, u.ID)
}
