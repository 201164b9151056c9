package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/tazhibayda/threads-service/internal/apperr"
	"github.com/tazhibayda/threads-service/internal/domain"
	"github.com/tazhibayda/threads-service/internal/repo/memrepo"
)

func seedDirectory(store *memrepo.Store) {
	store.AddUser(domain.User{ExternalID: "me", Username: "me"})
	for _, id := range []string{"u1", "u2", "u3", "u4", "u5"} {
		store.AddUser(domain.User{ExternalID: id, Username: "user_" + id})
	}
}

func TestListUsers_Pagination(t *testing.T) {
	store := memrepo.New()
	seedDirectory(store)
	svc := NewDirectoryService(store)
	ctx := context.Background()

	tests := []struct {
		page     int
		wantLen  int
		wantMore bool
	}{
		{page: 1, wantLen: 2, wantMore: true},
		{page: 2, wantLen: 2, wantMore: true},
		{page: 3, wantLen: 1, wantMore: false},
		{page: 4, wantLen: 0, wantMore: false},
	}
	for _, tt := range tests {
		res, err := svc.ListUsers(ctx, ListUsersInput{ExcludeExternalID: "me", Page: tt.page, Size: 2})
		if err != nil {
			t.Fatalf("page %d: %v", tt.page, err)
		}
		if len(res.Users) != tt.wantLen || res.HasMore != tt.wantMore {
			t.Errorf("page %d: got %d users hasMore=%v, want %d hasMore=%v",
				tt.page, len(res.Users), res.HasMore, tt.wantLen, tt.wantMore)
		}
		for _, u := range res.Users {
			if u.ExternalID == "me" {
				t.Errorf("page %d returned the excluded user", tt.page)
			}
		}
	}
}

func TestListUsers_DefaultsAndOrder(t *testing.T) {
	store := memrepo.New()
	seedDirectory(store)
	svc := NewDirectoryService(store)

	res, err := svc.ListUsers(context.Background(), ListUsersInput{ExcludeExternalID: "me"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Users) != 5 || res.HasMore {
		t.Fatalf("got %d users hasMore=%v", len(res.Users), res.HasMore)
	}
	if res.Users[0].ExternalID != "u5" {
		t.Errorf("default order should be newest first, got %s", res.Users[0].ExternalID)
	}

	res, _ = svc.ListUsers(context.Background(), ListUsersInput{ExcludeExternalID: "me", Sort: domain.Ascending})
	if res.Users[0].ExternalID != "u1" {
		t.Errorf("ascending should start at u1, got %s", res.Users[0].ExternalID)
	}
}

func TestListUsers_Search(t *testing.T) {
	store := memrepo.New()
	store.AddUser(domain.User{ExternalID: "me", Username: "annie"})
	store.AddUser(domain.User{ExternalID: "a", Username: "belle", Name: "Annabelle"})
	store.AddUser(domain.User{ExternalID: "b", Username: "anna99", Name: "Anna"})
	store.AddUser(domain.User{ExternalID: "c", Username: "bob", Name: "Bob"})
	svc := NewDirectoryService(store)

	res, err := svc.ListUsers(context.Background(), ListUsersInput{ExcludeExternalID: "me", Search: "ann"})
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]bool{}
	for _, u := range res.Users {
		got[u.ExternalID] = true
	}
	if len(got) != 2 || !got["a"] || !got["b"] {
		t.Fatalf("matched %v, want a and b", got)
	}

	res, _ = svc.ListUsers(context.Background(), ListUsersInput{ExcludeExternalID: "me", Search: "zzz"})
	if res.Users == nil || len(res.Users) != 0 || res.HasMore {
		t.Fatalf("no match should give an empty page, got %+v", res)
	}
}

func TestListUsers_Errors(t *testing.T) {
	store := memrepo.New()
	svc := NewDirectoryService(store)

	_, err := svc.ListUsers(context.Background(), ListUsersInput{Page: -1})
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("negative page: err = %v", err)
	}

	_, err = svc.ListUsers(context.Background(), ListUsersInput{Page: math.MaxInt, Size: 100})
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("page whose offset overflows: err = %v", err)
	}

	store.Err = errDBDown
	_, err = svc.ListUsers(context.Background(), ListUsersInput{})
	if err == nil || err.Error() != "failed to list users: connection refused" {
		t.Fatalf("err = %v", err)
	}
}
