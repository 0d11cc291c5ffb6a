package selection

import (
	"context"
	"fmt"
	"log"
	"sync"

	"routinecraft/internal/catalog"
	"routinecraft/internal/db"
)

// DefaultSnapshotKey is the snapshot row every single-profile deployment
// uses. The schema allows more keys but nothing creates them yet.
const DefaultSnapshotKey = "default"

// Store holds the user's current selection: an ordered set of product
// ids, unique by id, mutated only through Toggle/Remove/Clear. Every
// mutation persists the id list immediately; persistence is best-effort
// and failures are logged, not surfaced.
type Store struct {
	mu      sync.Mutex
	ids     []string
	catalog *catalog.Store
	db      *db.DB
	key     string
}

// NewStore creates a selection store backed by the given catalog and
// database. A nil database disables persistence (used in tests that only
// exercise set semantics).
func NewStore(cat *catalog.Store, database *db.DB) *Store {
	return &Store{catalog: cat, db: database, key: DefaultSnapshotKey}
}

// Rehydrate loads the persisted id list and intersects it with the
// loaded catalog, preserving stored order. Unknown ids are dropped.
func (s *Store) Rehydrate(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	stored, err := s.db.LoadSelection(ctx, s.key)
	if err != nil {
		return fmt.Errorf("loading selection snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = s.ids[:0]
	for _, id := range stored {
		if s.catalog.Get(id) != nil {
			s.ids = append(s.ids, id)
		}
	}
	return nil
}

// Toggle adds the product to the selection if absent, else removes it.
// Returns true if the product is selected after the call. Unknown ids
// are an error.
func (s *Store) Toggle(ctx context.Context, id string) (bool, error) {
	if s.catalog.Get(id) == nil {
		return false, fmt.Errorf("unknown product id %s", id)
	}

	s.mu.Lock()
	selected := !s.removeLocked(id)
	if selected {
		s.ids = append(s.ids, id)
	}
	ids := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, ids)
	return selected, nil
}

// Remove deletes the product from the selection. Removing an id that is
// not selected is a no-op.
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	s.removeLocked(id)
	ids := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, ids)
}

// Clear empties the selection.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.ids = s.ids[:0]
	s.mu.Unlock()

	s.persist(ctx, nil)
}

// IDs returns the selected product ids in selection order.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Products resolves the selection to catalog products, in selection order.
func (s *Store) Products() []catalog.Product {
	ids := s.IDs()
	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p := s.catalog.Get(id); p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// Len returns the number of selected products.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// removeLocked deletes id from the ordered list, reporting whether it
// was present. Callers hold s.mu.
func (s *Store) removeLocked(id string) bool {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) snapshotLocked() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// persist writes the id list snapshot. Fire-and-forget: a failed write
// leaves the in-memory selection authoritative until the next mutation.
func (s *Store) persist(ctx context.Context, ids []string) {
	if s.db == nil {
		return
	}
	if err := s.db.SaveSelection(ctx, s.key, ids); err != nil {
		log.Printf("selection: persisting snapshot: %v", err)
	}
}
