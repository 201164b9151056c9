package service

import (
	"context"

	"github.com/tazhibayda/threads-service/internal/apperr"
	"github.com/tazhibayda/threads-service/internal/domain"
)

const opListUsers = "failed to list users"

type ListUsersInput struct {
	ExcludeExternalID string
	Search            string
	Page              int // 0 means 1
	Size              int // 0 means 30
	Sort              domain.SortOrder
}

type DirectoryService struct {
	users UserStore
}

func NewDirectoryService(users UserStore) *DirectoryService {
	return &DirectoryService{users: users}
}

// ListUsers pages through users other than in.ExcludeExternalID, newest first
// unless in.Sort says otherwise.
func (s *DirectoryService) ListUsers(ctx context.Context, in ListUsersInput) (*domain.UserPage, error) {
	page, ok := normalizePage(in.Page, in.Size, defaultPageSize)
	if !ok {
		return nil, apperr.Invalid(opListUsers, "page and size must be non-negative and in range")
	}
	page.Sort = in.Sort
	f := domain.UserFilter{ExcludeExternalID: in.ExcludeExternalID, Search: in.Search}

	users, total, err := s.users.ListUsers(ctx, f, page)
	if err != nil {
		return nil, apperr.Wrap(opListUsers, err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return &domain.UserPage{Users: users, HasMore: page.HasMore(total, len(users))}, nil
}
