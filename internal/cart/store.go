package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"trove-storefront/internal/domain"
)

// Persister writes full cart snapshots to durable storage keyed by visitor
// session. Implementations must persist synchronously so a reload after any
// mutation observes the latest cart.
type Persister interface {
	Save(ctx context.Context, sessionID string, items []domain.CartItem) error
	Load(ctx context.Context, sessionID string) ([]domain.CartItem, error)
	Delete(ctx context.Context, sessionID string) error
}

// Store holds one visitor's cart. Every mutating operation persists the
// resulting snapshot through the Persister before returning; the persisted
// copy is the source of truth across requests.
type Store struct {
	sessionID string
	persister Persister
	items     []domain.CartItem
}

// NewStore builds an empty cart bound to a session.
func NewStore(sessionID string, p Persister) *Store {
	return &Store{sessionID: sessionID, persister: p}
}

// Load restores a session's cart from durable storage. A session with no
// persisted cart yields an empty store.
func Load(ctx context.Context, sessionID string, p Persister) (*Store, error) {
	items, err := p.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return NewStore(sessionID, p), nil
		}
		return nil, err
	}
	return &Store{sessionID: sessionID, persister: p, items: items}, nil
}

// AddItem appends the item, or merges quantities when a line with the same
// product id already exists.
func (s *Store) AddItem(ctx context.Context, item domain.CartItem) error {
	if strings.TrimSpace(item.ID) == "" {
		return domain.ValidationErrors{"id": "product id required"}
	}
	if item.Quantity < 1 {
		return domain.ValidationErrors{"quantity": "quantity must be at least 1"}
	}
	if item.UnitPrice.IsNegative() {
		return domain.ValidationErrors{"unitPrice": "unit price must not be negative"}
	}
	merged := false
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, item)
	}
	return s.persist(ctx)
}

// RemoveItem deletes the matching line. Removing an absent id is a no-op,
// not an error.
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// SetQuantity replaces the quantity of an existing line. Quantities below 1
// are rejected; deletion goes through RemoveItem only.
func (s *Store) SetQuantity(ctx context.Context, id string, quantity int) error {
	if quantity < 1 {
		return domain.ValidationErrors{"quantity": "quantity must be at least 1"}
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			return s.persist(ctx)
		}
	}
	return domain.ErrNotFound
}

// Clear empties the cart and removes the persisted snapshot.
func (s *Store) Clear(ctx context.Context) error {
	s.items = nil
	return s.persister.Delete(ctx, s.sessionID)
}

// Items returns a copy of the current lines.
func (s *Store) Items() []domain.CartItem {
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// IsEmpty reports whether the cart has no lines.
func (s *Store) IsEmpty() bool {
	return len(s.items) == 0
}

// TotalItemCount is the sum of line quantities.
func (s *Store) TotalItemCount() int {
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity over all lines.
func (s *Store) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (s *Store) persist(ctx context.Context) error {
	return s.persister.Save(ctx, s.sessionID, s.items)
}
