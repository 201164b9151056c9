package domain

import "strings"

type SortOrder int

const (
	Descending SortOrder = iota
	Ascending
)

// ParseSortOrder accepts "asc"/"ascending"/"1"; anything else is descending.
func ParseSortOrder(s string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending", "1":
		return Ascending
	}
	return Descending
}

// Direction is the value used in a sort document on created_at.
func (o SortOrder) Direction() int {
	if o == Ascending {
		return 1
	}
	return -1
}

// UserFilter selects users for the directory. Search is matched as a literal,
// case-insensitive substring of username or name.
type UserFilter struct {
	ExcludeExternalID string
	Search            string
}

func (f UserFilter) SearchText() string { return strings.TrimSpace(f.Search) }

// Matches evaluates the filter in memory with the same semantics the store uses.
func (f UserFilter) Matches(u User) bool {
	if u.ExternalID == f.ExcludeExternalID {
		return false
	}
	q := strings.ToLower(f.SearchText())
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(u.Username), q) ||
		strings.Contains(strings.ToLower(u.Name), q)
}

type PageRequest struct {
	Number int // 1-based
	Size   int
	Sort   SortOrder
}

func (p PageRequest) Skip() int { return (p.Number - 1) * p.Size }

// HasMore reports whether total matching documents exceed those seen so far.
func (p PageRequest) HasMore(total int64, returned int) bool {
	return total > int64(p.Skip()+returned)
}
