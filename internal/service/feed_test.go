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

func TestListFeed(t *testing.T) {
	store := memrepo.New()
	a := store.AddUser(domain.User{ExternalID: "a", Name: "A"})
	var last domain.Thread
	for i := 0; i < 3; i++ {
		last = store.AddThread(domain.Thread{Text: "post", Author: a.ID})
	}
	store.AddThread(domain.Thread{Text: "reply", Author: a.ID, ParentID: ptr(last.ID)})
	svc := NewFeedService(store)

	page, err := svc.ListFeed(context.Background(), 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Posts) != 2 || !page.HasMore {
		t.Fatalf("page 1: %d posts hasMore=%v", len(page.Posts), page.HasMore)
	}
	if page.Posts[0].ID != last.ID {
		t.Error("feed is not newest first")
	}
	if len(page.Posts[0].Children) != 1 || page.Posts[0].Children[0].Text != "reply" {
		t.Errorf("children = %+v", page.Posts[0].Children)
	}

	page, err = svc.ListFeed(context.Background(), 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Posts) != 1 || page.HasMore {
		t.Fatalf("page 2: %d posts hasMore=%v", len(page.Posts), page.HasMore)
	}
	for _, p := range page.Posts {
		if p.ParentID != nil {
			t.Error("feed contains a reply")
		}
	}
}

func TestListFeed_InvalidPage(t *testing.T) {
	svc := NewFeedService(memrepo.New())
	for _, tt := range []struct{ page, size int }{{1, -5}, {math.MaxInt, 100}, {math.MaxInt / 2, 20}} {
		_, err := svc.ListFeed(context.Background(), tt.page, tt.size)
		if !errors.Is(err, apperr.ErrInvalidInput) {
			t.Errorf("ListFeed(%d, %d) err = %v, want invalid input", tt.page, tt.size, err)
		}
	}
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name         string
		number, size int
		want         domain.PageRequest
		ok           bool
	}{
		{"defaults", 0, 0, domain.PageRequest{Number: 1, Size: 30}, true},
		{"explicit", 3, 10, domain.PageRequest{Number: 3, Size: 10}, true},
		{"capped", 1, 1000, domain.PageRequest{Number: 1, Size: maxPageSize}, true},
		{"negative number", -1, 10, domain.PageRequest{}, false},
		{"negative size", 1, -1, domain.PageRequest{}, false},
		{"offset overflows", math.MaxInt, 30, domain.PageRequest{}, false},
		{"last representable page", math.MaxInt/30 + 1, 30, domain.PageRequest{Number: math.MaxInt/30 + 1, Size: 30}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalizePage(tt.number, tt.size, defaultPageSize)
			if ok != tt.ok || got != tt.want {
				t.Errorf("normalizePage(%d, %d) = %+v, %v; want %+v, %v", tt.number, tt.size, got, ok, tt.want, tt.ok)
			}
		})
	}
}
