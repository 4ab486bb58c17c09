package util

// OrderedSet keeps unique strings in first-seen order.
type OrderedSet struct {
	items []string
	seen  map[string]struct{}
}

func NewOrderedSet(capacity int) *OrderedSet {
	return &OrderedSet{
		items: make([]string, 0, capacity),
		seen:  make(map[string]struct{}, capacity),
	}
}

// Add inserts item unless it is empty or already present. It reports whether
// the set grew.
func (s *OrderedSet) Add(item string) bool {
	if item == "" {
		return false
	}
	if _, exists := s.seen[item]; exists {
		return false
	}
	s.seen[item] = struct{}{}
	s.items = append(s.items, item)
	return true
}

func (s *OrderedSet) AddAll(items []string) {
	for _, item := range items {
		s.Add(item)
	}
}

// Items returns a copy of the elements in insertion order.
func (s *OrderedSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
