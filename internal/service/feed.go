package service

import (
	"context"

	"github.com/tazhibayda/threads-service/internal/apperr"
	"github.com/tazhibayda/threads-service/internal/domain"
)

const opFetchThreads = "failed to fetch threads"

type FeedService struct {
	threads ThreadStore
	join    joiner
}

func NewFeedService(s Store) *FeedService {
	return &FeedService{threads: s, join: joiner{users: s, threads: s, communities: s}}
}

// ListFeed pages through top-level posts, newest first.
func (s *FeedService) ListFeed(ctx context.Context, pageNumber, pageSize int) (*domain.FeedPage, error) {
	page, ok := normalizePage(pageNumber, pageSize, defaultFeedSize)
	if !ok {
		return nil, apperr.Invalid(opFetchThreads, "page and size must be non-negative and in range")
	}
	page.Sort = domain.Descending

	posts, total, err := s.threads.ListTopLevel(ctx, page)
	if err != nil {
		return nil, apperr.Wrap(opFetchThreads, err)
	}
	views, err := s.join.expand(ctx, posts)
	if err != nil {
		return nil, apperr.Wrap(opFetchThreads, err)
	}
	return &domain.FeedPage{Posts: views, HasMore: page.HasMore(total, len(posts))}, nil
}
