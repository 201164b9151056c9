package repo

import (
	"context"
	"time"

	"github.com/tazhibayda/threads-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// UpsertProfile writes the profile fields of the user keyed by external id in a
// single atomic update, creating the document when absent. created reports
// whether the document was inserted.
func (s *Store) UpsertProfile(ctx context.Context, p domain.Profile) (created bool, err error) {
	sp, ctx := startSpan(ctx, "mongo.users.upsert", tracer.Tag("external_id", p.ExternalID))
	defer func() { finish(sp, err) }()

	filter := bson.M{"external_id": p.ExternalID}
	update := bson.M{
		"$set": bson.M{
			"username":  p.Username,
			"name":      p.Name,
			"bio":       p.Bio,
			"image":     p.Image,
			"onboarded": true,
		},
		"$setOnInsert": bson.M{
			"created_at":  time.Now().UTC(),
			"threads":     bson.A{},
			"communities": bson.A{},
		},
	}
	opts := options.Update().SetUpsert(true)

	res, err := s.colUsers.UpdateOne(ctx, filter, update, opts)
	if IsDup(err) {
		// lost an insert race on uniq_external_id; the document exists now
		res, err = s.colUsers.UpdateOne(ctx, filter, update, opts)
	}
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

// FindUserByExternalID returns nil, nil when no user has that id.
func (s *Store) FindUserByExternalID(ctx context.Context, externalID string) (u *domain.User, err error) {
	sp, ctx := startSpan(ctx, "mongo.users.find_one", tracer.Tag("external_id", externalID))
	defer func() { finish(sp, err) }()

	var out domain.User
	err = s.colUsers.FindOne(ctx, bson.M{"external_id": externalID}).Decode(&out)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) FindUsersByIDs(ctx context.Context, ids []primitive.ObjectID) (out []domain.User, err error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}
	sp, ctx := startSpan(ctx, "mongo.users.find_by_ids", tracer.Tag("count", len(ids)))
	defer func() { finish(sp, err) }()

	cur, err := s.colUsers.Find(ctx, idsFilter(ids))
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.User](ctx, cur)
}

// ListUsers returns one page of users matching f and the total match count.
func (s *Store) ListUsers(ctx context.Context, f domain.UserFilter, p domain.PageRequest) (out []domain.User, total int64, err error) {
	sp, ctx := startSpan(ctx, "mongo.users.list",
		tracer.Tag("page", p.Number),
		tracer.Tag("size", p.Size),
		tracer.Tag("search", f.SearchText() != ""),
	)
	defer func() { finish(sp, err) }()

	q := userFilterBSON(f)
	total, err = s.colUsers.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	cur, err := s.colUsers.Find(ctx, q, pageOptions(p))
	if err != nil {
		return nil, 0, err
	}
	out, err = decodeAll[domain.User](ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
