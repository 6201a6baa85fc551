// Package crawl — post deduplication.
// Posts can shift across page boundaries while a long import runs; the
// seen set keeps a post from being written twice.
package crawl

// Seen is a set of post IDs already dispatched.
type Seen struct {
	ids map[int]bool
}

// NewSeen creates an empty Seen set.
func NewSeen() *Seen {
	return &Seen{ids: make(map[int]bool)}
}

// Add records id and reports whether it was new. A zero ID is always new
// since it cannot be told apart.
func (s *Seen) Add(id int) bool {
	if id == 0 {
		return true
	}
	if s.ids[id] {
		return false
	}
	s.ids[id] = true
	return true
}

// Len returns the number of distinct IDs seen.
func (s *Seen) Len() int {
	return len(s.ids)
}
