// Package service holds the read and write paths used by the presentation
// layer. Services never talk to the database driver directly; they depend on
// the narrow store interfaces below, which *repo.Store satisfies.
package service

import (
	"context"
	"math"

	"github.com/tazhibayda/threads-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStore interface {
	UpsertProfile(ctx context.Context, p domain.Profile) (created bool, err error)
	FindUserByExternalID(ctx context.Context, externalID string) (*domain.User, error)
	FindUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
	ListUsers(ctx context.Context, f domain.UserFilter, p domain.PageRequest) ([]domain.User, int64, error)
}

type ThreadStore interface {
	FindThreadsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Thread, error)
	FindThreadsByAuthor(ctx context.Context, author primitive.ObjectID) ([]domain.Thread, error)
	FindRepliesExcludingAuthor(ctx context.Context, ids []primitive.ObjectID, author primitive.ObjectID) ([]domain.Thread, error)
	ListTopLevel(ctx context.Context, p domain.PageRequest) ([]domain.Thread, int64, error)
}

type CommunityStore interface {
	FindCommunitiesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Community, error)
}

// Invalidator drops cached renderings of a page path.
type Invalidator interface {
	Invalidate(ctx context.Context, path string) error
}

// Store is everything the services need from persistence.
type Store interface {
	UserStore
	ThreadStore
	CommunityStore
}

const (
	defaultPageSize = 30
	defaultFeedSize = 20
	maxPageSize     = 100
)

// normalizePage applies defaults for zero values and rejects negatives and
// page numbers whose offset would not fit in an int.
func normalizePage(number, size, def int) (domain.PageRequest, bool) {
	if number < 0 || size < 0 {
		return domain.PageRequest{}, false
	}
	if number == 0 {
		number = 1
	}
	if size == 0 {
		size = def
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	if number-1 > math.MaxInt/size {
		return domain.PageRequest{}, false
	}
	return domain.PageRequest{Number: number, Size: size}, true
}
