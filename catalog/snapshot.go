package catalog

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/junaidrashid-git/smartcart-api/models"
)

type view struct {
	products []models.Product
	byID     map[string]int
	version  uint64
	loadedAt time.Time
}

// Snapshot is the catalog as last loaded. Readers always see a complete list; a reload
// swaps the whole list in one step.
type Snapshot struct {
	current atomic.Pointer[view]
}

func NewSnapshot() *Snapshot {
	s := &Snapshot{}
	s.current.Store(&view{byID: map[string]int{}})
	return s
}

// Replace installs products as the new catalog and returns the new version.
func (s *Snapshot) Replace(products []models.Product) uint64 {
	owned := make([]models.Product, len(products))
	copy(owned, products)
	byID := make(map[string]int, len(owned))
	for i, p := range owned {
		byID[p.ID] = i
	}
	for {
		old := s.current.Load()
		next := &view{products: owned, byID: byID, version: old.version + 1, loadedAt: time.Now()}
		if s.current.CompareAndSwap(old, next) {
			return next.version
		}
	}
}

// Products returns a copy of the current list in store order.
func (s *Snapshot) Products() []models.Product {
	v := s.current.Load()
	out := make([]models.Product, len(v.products))
	copy(out, v.products)
	return out
}

func (s *Snapshot) Find(id string) (models.Product, bool) {
	v := s.current.Load()
	i, ok := v.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return v.products[i], true
}

func (s *Snapshot) Version() uint64 {
	return s.current.Load().version
}

func (s *Snapshot) LoadedAt() time.Time {
	return s.current.Load().loadedAt
}

func (s *Snapshot) Len() int {
	return len(s.current.Load().products)
}

// Filter narrows a browse listing.
type Filter struct {
	Search   string
	Category string
	InStock  bool
}

// Query returns the products matching f in store order. Search matches name, category or
// description case-insensitively.
func (s *Snapshot) Query(f Filter) []models.Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := []models.Product{}
	for _, p := range s.current.Load().products {
		if f.InStock && !p.InStock() {
			continue
		}
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Category), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}
