package repo

import (
	"context"

	"github.com/tazhibayda/threads-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

var communityDisplay = bson.D{
	{Key: "_id", Value: 1},
	{Key: "external_id", Value: 1},
	{Key: "name", Value: 1},
	{Key: "image", Value: 1},
}

// FindCommunitiesByIDs loads only the display fields of the given communities.
func (s *Store) FindCommunitiesByIDs(ctx context.Context, ids []primitive.ObjectID) (out []domain.Community, err error) {
	if len(ids) == 0 {
		return []domain.Community{}, nil
	}
	sp, ctx := startSpan(ctx, "mongo.communities.find_by_ids", tracer.Tag("count", len(ids)))
	defer func() { finish(sp, err) }()

	cur, err := s.colCommunities.Find(ctx, idsFilter(ids), options.Find().SetProjection(communityDisplay))
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Community](ctx, cur)
}

func (s *Store) CreateCommunity(ctx context.Context, c *domain.Community) (err error) {
	sp, ctx := startSpan(ctx, "mongo.communities.insert")
	defer func() { finish(sp, err) }()

	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	_, err = s.colCommunities.InsertOne(ctx, c)
	return err
}
