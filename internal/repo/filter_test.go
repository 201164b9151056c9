package repo

import (
	"testing"

	"github.com/tazhibayda/threads-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserFilterBSON_ExcludeOnly(t *testing.T) {
	q := userFilterBSON(domain.UserFilter{ExcludeExternalID: "user_1", Search: "   "})
	if _, ok := q["$or"]; ok {
		t.Fatalf("blank search must not add $or: %v", q)
	}
	ne, ok := q["external_id"].(bson.M)
	if !ok || ne["$ne"] != "user_1" {
		t.Fatalf("external_id filter = %v", q["external_id"])
	}
}

func TestUserFilterBSON_SearchIsLiteral(t *testing.T) {
	q := userFilterBSON(domain.UserFilter{ExcludeExternalID: "u", Search: " a.b*(c "})
	or, ok := q["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("$or = %v", q["$or"])
	}
	for i, field := range []string{"username", "name"} {
		clause := or[i].(bson.M)[field].(bson.M)
		re := clause["$regex"].(primitive.Regex)
		if re.Pattern != `a\.b\*\(c` {
			t.Fatalf("%s pattern = %q", field, re.Pattern)
		}
		if re.Options != "i" {
			t.Fatalf("%s options = %q", field, re.Options)
		}
	}
}

func TestPageOptions(t *testing.T) {
	o := pageOptions(domain.PageRequest{Number: 3, Size: 2, Sort: domain.Ascending})
	if *o.Skip != 4 || *o.Limit != 2 {
		t.Fatalf("skip=%d limit=%d", *o.Skip, *o.Limit)
	}
	sort := o.Sort.(bson.D)
	if sort[0].Key != "created_at" || sort[0].Value != 1 {
		t.Fatalf("sort = %v", sort)
	}
}
