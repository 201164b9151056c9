// Package memrepo is an in-memory store with the same query semantics as
// repo.Store. Tests use it in place of a database.
package memrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tazhibayda/threads-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu          sync.Mutex
	users       []domain.User
	threads     map[primitive.ObjectID]domain.Thread
	communities map[primitive.ObjectID]domain.Community
	clock       time.Time

	// Err, when set, is returned by every query.
	Err error
}

func New() *Store {
	return &Store{
		threads:     make(map[primitive.ObjectID]domain.Thread),
		communities: make(map[primitive.ObjectID]domain.Community),
		clock:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick hands out strictly increasing timestamps so ordering is deterministic.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) AddUser(u domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.tick()
	}
	s.users = append(s.users, u)
	return u
}

// AddThread stores t and links it like repo.Store.CreateThread does.
func (s *Store) AddThread(t domain.Thread) domain.Thread {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.tick()
	}
	s.threads[t.ID] = t
	if t.ParentID != nil {
		if p, ok := s.threads[*t.ParentID]; ok {
			p.Children = append(p.Children, t.ID)
			s.threads[p.ID] = p
		}
		return t
	}
	for i := range s.users {
		if s.users[i].ID == t.Author {
			s.users[i].Threads = append(s.users[i].Threads, t.ID)
		}
	}
	return t
}

func (s *Store) AddCommunity(c domain.Community) domain.Community {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	s.communities[c.ID] = c
	return c
}

// Thread returns the stored copy, with children linked.
func (s *Store) Thread(id primitive.ObjectID) domain.Thread {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.threads[id]
}

func (s *Store) DeleteThread(id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.threads, id)
}

func (s *Store) DeleteCommunity(id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.communities, id)
}

func (s *Store) DeleteUser(id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return
		}
	}
}

func (s *Store) UpsertProfile(ctx context.Context, p domain.Profile) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	for i := range s.users {
		if s.users[i].ExternalID == p.ExternalID {
			u := &s.users[i]
			u.Username, u.Name, u.Bio, u.Image, u.Onboarded = p.Username, p.Name, p.Bio, p.Image, true
			return false, nil
		}
	}
	s.users = append(s.users, domain.User{
		ID:          primitive.NewObjectID(),
		ExternalID:  p.ExternalID,
		Username:    p.Username,
		Name:        p.Name,
		Bio:         p.Bio,
		Image:       p.Image,
		Onboarded:   true,
		Threads:     []primitive.ObjectID{},
		Communities: []primitive.ObjectID{},
		CreatedAt:   s.tick(),
	})
	return true, nil
}

func (s *Store) FindUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.ExternalID == externalID {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Store) FindUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	want := set(ids)
	out := []domain.User{}
	for _, u := range s.users {
		if _, ok := want[u.ID]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *Store) ListUsers(ctx context.Context, f domain.UserFilter, p domain.PageRequest) ([]domain.User, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, 0, s.Err
	}
	var matched []domain.User
	for _, u := range s.users {
		if f.Matches(u) {
			matched = append(matched, u)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if p.Sort == domain.Ascending {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return window(matched, p), int64(len(matched)), nil
}

func (s *Store) FindThreadsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Thread, error) {
	want := set(ids)
	return s.threadsWhere(func(t domain.Thread) bool {
		_, ok := want[t.ID]
		return ok
	})
}

func (s *Store) FindThreadsByAuthor(ctx context.Context, author primitive.ObjectID) ([]domain.Thread, error) {
	return s.threadsWhere(func(t domain.Thread) bool { return t.Author == author })
}

func (s *Store) FindRepliesExcludingAuthor(ctx context.Context, ids []primitive.ObjectID, author primitive.ObjectID) ([]domain.Thread, error) {
	want := set(ids)
	return s.threadsWhere(func(t domain.Thread) bool {
		_, ok := want[t.ID]
		return ok && t.Author != author
	})
}

func (s *Store) ListTopLevel(ctx context.Context, p domain.PageRequest) ([]domain.Thread, int64, error) {
	all, err := s.threadsWhere(func(t domain.Thread) bool { return t.ParentID == nil })
	if err != nil {
		return nil, 0, err
	}
	return window(all, p), int64(len(all)), nil
}

func (s *Store) FindCommunitiesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []domain.Community{}
	for _, id := range ids {
		if c, ok := s.communities[id]; ok {
			out = append(out, domain.Community{ID: c.ID, ExternalID: c.ExternalID, Name: c.Name, Image: c.Image})
		}
	}
	return out, nil
}

// threadsWhere returns matching threads newest first.
func (s *Store) threadsWhere(keep func(domain.Thread) bool) ([]domain.Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []domain.Thread{}
	for _, t := range s.threads {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func window[T any](items []T, p domain.PageRequest) []T {
	skip := p.Skip()
	if skip < 0 || skip >= len(items) {
		return []T{}
	}
	end := skip + p.Size
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

func set(ids []primitive.ObjectID) map[primitive.ObjectID]struct{} {
	out := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
