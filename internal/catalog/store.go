package catalog

// Store exposes the read-only catalog.
type Store interface {
	All() []Listing
	Get(id string) (Listing, bool)
}

// MemoryStore keeps the catalog in insertion order. It is safe for concurrent reads
// because it is never mutated after construction.
type MemoryStore struct {
	listings []Listing
	byID     map[string]int
}

// NewMemoryStore copies listings into a new store. Later duplicates of an id are ignored.
func NewMemoryStore(listings []Listing) *MemoryStore {
	s := &MemoryStore{
		listings: make([]Listing, 0, len(listings)),
		byID:     make(map[string]int, len(listings)),
	}
	for _, l := range listings {
		if _, ok := s.byID[l.ID]; ok {
			continue
		}
		s.byID[l.ID] = len(s.listings)
		s.listings = append(s.listings, l.clone())
	}
	return s
}

// All returns a copy of the catalog in insertion order.
func (s *MemoryStore) All() []Listing {
	out := make([]Listing, len(s.listings))
	for i, l := range s.listings {
		out[i] = l.clone()
	}
	return out
}

// Get looks up a listing by id.
func (s *MemoryStore) Get(id string) (Listing, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return Listing{}, false
	}
	return s.listings[idx].clone(), true
}

// Len reports the number of listings.
func (s *MemoryStore) Len() int {
	return len(s.listings)
}
