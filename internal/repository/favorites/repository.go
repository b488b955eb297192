package favorites

import "context"

// Repository persists per-session favorite product ids. Load returns
// domain.ErrNotFound when the session has no stored set.
type Repository interface {
	Save(ctx context.Context, sessionID string, ids []string) error
	Load(ctx context.Context, sessionID string) ([]string, error)
	Delete(ctx context.Context, sessionID string) error
}
