package visit

import (
	"context"
	"time"

	domain "gymdesk/internal/domain/visit"
)

// Store persists Visit state.
type Store interface {
	Save(ctx context.Context, value domain.Visit) error
	ListByMember(ctx context.Context, memberID int64, limit int) ([]domain.Visit, error)
	ListSince(ctx context.Context, t time.Time) ([]domain.Visit, error)
	CountSince(ctx context.Context, t time.Time) (int, error)
}
