package cart

import (
	"context"

	"trove-storefront/internal/domain"
)

// Repository persists per-session cart snapshots. Load returns
// domain.ErrNotFound when the session has no stored cart.
type Repository interface {
	Save(ctx context.Context, sessionID string, items []domain.CartItem) error
	Load(ctx context.Context, sessionID string) ([]domain.CartItem, error)
	Delete(ctx context.Context, sessionID string) error
}
