package repo

import (
	"regexp"

	"github.com/tazhibayda/threads-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// userFilterBSON translates the directory filter into a users query.
// Search text is quoted, so it always matches as a literal substring.
func userFilterBSON(f domain.UserFilter) bson.M {
	q := bson.M{"external_id": bson.M{"$ne": f.ExcludeExternalID}}
	if text := f.SearchText(); text != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
		q["$or"] = bson.A{
			bson.M{"username": bson.M{"$regex": re}},
			bson.M{"name": bson.M{"$regex": re}},
		}
	}
	return q
}

// pageOptions sorts on created_at, breaking ties on _id so pages never overlap.
func pageOptions(p domain.PageRequest) *options.FindOptions {
	dir := p.Sort.Direction()
	return options.Find().
		SetSort(bson.D{{Key: "created_at", Value: dir}, {Key: "_id", Value: dir}}).
		SetSkip(int64(p.Skip())).
		SetLimit(int64(p.Size))
}

func idsFilter(ids []primitive.ObjectID) bson.M {
	return bson.M{"_id": bson.M{"$in": ids}}
}
