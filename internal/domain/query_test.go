package domain

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserFilterMatches(t *testing.T) {
	f := UserFilter{ExcludeExternalID: "me", Search: " ANN "}
	tests := []struct {
		u    User
		want bool
	}{
		{User{ExternalID: "me", Username: "anna"}, false},
		{User{ExternalID: "1", Name: "Annabelle"}, true},
		{User{ExternalID: "2", Username: "anna99"}, true},
		{User{ExternalID: "3", Username: "bob", Name: "Bob"}, false},
	}
	for _, tt := range tests {
		if got := f.Matches(tt.u); got != tt.want {
			t.Errorf("Matches(%+v) = %v, want %v", tt.u, got, tt.want)
		}
	}

	literal := UserFilter{Search: "a.c"}
	if literal.Matches(User{ExternalID: "x", Username: "abc"}) {
		t.Error("search must be literal, '.' matched a letter")
	}
}

func TestPageRequest(t *testing.T) {
	p := PageRequest{Number: 3, Size: 2}
	if p.Skip() != 4 {
		t.Fatalf("Skip() = %d", p.Skip())
	}
	if p.HasMore(5, 1) {
		t.Error("last page reported more")
	}
	if !(PageRequest{Number: 1, Size: 2}).HasMore(5, 2) {
		t.Error("first page should report more")
	}
}

func TestParseSortOrder(t *testing.T) {
	for in, want := range map[string]SortOrder{"asc": Ascending, "ASC": Ascending, "1": Ascending, "desc": Descending, "": Descending, "junk": Descending} {
		if got := ParseSortOrder(in); got != want {
			t.Errorf("ParseSortOrder(%q) = %v, want %v", in, got, want)
		}
	}
	if Ascending.Direction() != 1 || Descending.Direction() != -1 {
		t.Error("direction mismatch")
	}
}

func TestChildIDs(t *testing.T) {
	a, b := Thread{}, Thread{}
	x, y := primitive.NewObjectID(), primitive.NewObjectID()
	a.Children = []primitive.ObjectID{x, y}
	b.Children = []primitive.ObjectID{y}
	got := ChildIDs([]Thread{a, b})
	if len(got) != 2 || got[0] != x || got[1] != y {
		t.Fatalf("ChildIDs = %v", got)
	}
}
