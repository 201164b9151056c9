package service

import (
	"context"

	"github.com/tazhibayda/threads-service/internal/apperr"
	"github.com/tazhibayda/threads-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const opFetchUser = "failed to fetch user"

type ContentService struct {
	users UserStore
	join  joiner
}

func NewContentService(s Store) *ContentService {
	return &ContentService{
		users: s,
		join:  joiner{users: s, threads: s, communities: s},
	}
}

// GetUser returns the user with its communities resolved, or nil when the
// user does not exist.
func (s *ContentService) GetUser(ctx context.Context, externalID string) (*domain.UserProfile, error) {
	u, err := s.users.FindUserByExternalID(ctx, externalID)
	if err != nil {
		return nil, apperr.Wrap(opFetchUser, err)
	}
	if u == nil {
		return nil, nil
	}

	out := &domain.UserProfile{User: *u, Communities: []domain.CommunitySummary{}}
	if len(u.Communities) == 0 {
		return out, nil
	}
	cs, err := s.join.communities.FindCommunitiesByIDs(ctx, unique(u.Communities))
	if err != nil {
		return nil, apperr.Wrap(opFetchUser, err)
	}
	byID := make(map[primitive.ObjectID]*domain.CommunitySummary, len(cs))
	for i := range cs {
		byID[cs[i].ID] = cs[i].Summary()
	}
	for _, id := range u.Communities {
		if c, ok := byID[id]; ok {
			out.Communities = append(out.Communities, *c)
		}
	}
	return out, nil
}

// GetUserThreads returns the user with its threads resolved: each thread's
// community, its replies and the replies' authors. Nil when the user does not exist.
func (s *ContentService) GetUserThreads(ctx context.Context, externalID string) (*domain.UserThreads, error) {
	u, err := s.users.FindUserByExternalID(ctx, externalID)
	if err != nil {
		return nil, apperr.Wrap(opFetchUser, err)
	}
	if u == nil {
		return nil, nil
	}

	threads, err := s.join.threadsByID(ctx, u.Threads)
	if err != nil {
		return nil, apperr.Wrap(opFetchUser, err)
	}
	views, err := s.join.expand(ctx, threads)
	if err != nil {
		return nil, apperr.Wrap(opFetchUser, err)
	}
	return &domain.UserThreads{User: *u, Threads: views}, nil
}
