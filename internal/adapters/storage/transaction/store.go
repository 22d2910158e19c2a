package transaction

import (
	"context"
	"time"

	domain "gymdesk/internal/domain/transaction"
)

// Store persists Transaction state.
type Store interface {
	Save(ctx context.Context, value domain.Transaction) error
	ListByMember(ctx context.Context, memberID int64) ([]domain.Transaction, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Transaction, error)
	CountByPackage(ctx context.Context, packageID int64) (int, error)
	SumAmountSince(ctx context.Context, t time.Time) (int64, error)
}
