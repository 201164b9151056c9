package repo

import (
	"context"
	"time"

	"github.com/tazhibayda/threads-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// CreateThread is used for seeding; threads are otherwise written by the
// posting flow. Replies are linked into their parent's children, top-level
// posts into the author's threads.
func (s *Store) CreateThread(ctx context.Context, t *domain.Thread) (err error) {
	sp, ctx := startSpan(ctx, "mongo.threads.insert")
	defer func() { finish(sp, err) }()

	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if t.Children == nil {
		t.Children = []primitive.ObjectID{}
	}
	if _, err = s.colThreads.InsertOne(ctx, t); err != nil {
		return err
	}
	if t.ParentID != nil {
		_, err = s.colThreads.UpdateByID(ctx, *t.ParentID, bson.M{"$push": bson.M{"children": t.ID}})
		return err
	}
	_, err = s.colUsers.UpdateByID(ctx, t.Author, bson.M{"$push": bson.M{"threads": t.ID}})
	return err
}

func (s *Store) FindThreadsByIDs(ctx context.Context, ids []primitive.ObjectID) (out []domain.Thread, err error) {
	if len(ids) == 0 {
		return []domain.Thread{}, nil
	}
	sp, ctx := startSpan(ctx, "mongo.threads.find_by_ids", tracer.Tag("count", len(ids)))
	defer func() { finish(sp, err) }()

	cur, err := s.colThreads.Find(ctx, idsFilter(ids))
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Thread](ctx, cur)
}

func (s *Store) FindThreadsByAuthor(ctx context.Context, author primitive.ObjectID) (out []domain.Thread, err error) {
	sp, ctx := startSpan(ctx, "mongo.threads.find_by_author", tracer.Tag("author", author.Hex()))
	defer func() { finish(sp, err) }()

	cur, err := s.colThreads.Find(ctx, bson.M{"author": author},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Thread](ctx, cur)
}

// FindRepliesExcludingAuthor returns the threads in ids not written by author,
// newest first.
func (s *Store) FindRepliesExcludingAuthor(ctx context.Context, ids []primitive.ObjectID, author primitive.ObjectID) (out []domain.Thread, err error) {
	if len(ids) == 0 {
		return []domain.Thread{}, nil
	}
	sp, ctx := startSpan(ctx, "mongo.threads.find_replies", tracer.Tag("count", len(ids)))
	defer func() { finish(sp, err) }()

	cur, err := s.colThreads.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}, "author": bson.M{"$ne": author}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Thread](ctx, cur)
}

// ListTopLevel pages through posts without a parent. A null parent_id also
// matches documents that lack the field.
func (s *Store) ListTopLevel(ctx context.Context, p domain.PageRequest) (out []domain.Thread, total int64, err error) {
	sp, ctx := startSpan(ctx, "mongo.threads.list_top_level", tracer.Tag("page", p.Number))
	defer func() { finish(sp, err) }()

	q := bson.M{"parent_id": nil}
	total, err = s.colThreads.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	cur, err := s.colThreads.Find(ctx, q, pageOptions(p))
	if err != nil {
		return nil, 0, err
	}
	out, err = decodeAll[domain.Thread](ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
