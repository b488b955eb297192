package favorites

import (
	"context"
	"errors"
	"strings"

	"trove-storefront/internal/domain"
)

// Persister writes the favorite product-id set to durable storage keyed by
// visitor session.
type Persister interface {
	Save(ctx context.Context, sessionID string, ids []string) error
	Load(ctx context.Context, sessionID string) ([]string, error)
	Delete(ctx context.Context, sessionID string) error
}

// Store holds one visitor's favorited product ids with set semantics.
// Insertion order is preserved for display.
type Store struct {
	sessionID string
	persister Persister
	ids       []string
}

func NewStore(sessionID string, p Persister) *Store {
	return &Store{sessionID: sessionID, persister: p}
}

// Load restores a session's favorites. A session with no persisted set
// yields an empty store.
func Load(ctx context.Context, sessionID string, p Persister) (*Store, error) {
	ids, err := p.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return NewStore(sessionID, p), nil
		}
		return nil, err
	}
	return &Store{sessionID: sessionID, persister: p, ids: ids}, nil
}

// Add favorites a product. Adding an id twice keeps a single entry.
func (s *Store) Add(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ValidationErrors{"id": "product id required"}
	}
	if s.IsFavorited(id) {
		return nil
	}
	s.ids = append(s.ids, id)
	return s.persist(ctx)
}

// Remove unfavorites a product; absent ids are a no-op.
func (s *Store) Remove(ctx context.Context, id string) error {
	for i := range s.ids {
		if s.ids[i] == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// Toggle flips the favorited state and returns the new state. Two toggles
// in a row restore the original state.
func (s *Store) Toggle(ctx context.Context, id string) (bool, error) {
	if s.IsFavorited(id) {
		if err := s.Remove(ctx, id); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := s.Add(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// IsFavorited reports whether the product is in the set.
func (s *Store) IsFavorited(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Count is the number of favorited products.
func (s *Store) Count() int {
	return len(s.ids)
}

// IDs returns a copy of the favorited product ids in insertion order.
func (s *Store) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *Store) persist(ctx context.Context) error {
	return s.persister.Save(ctx, s.sessionID, s.ids)
}
