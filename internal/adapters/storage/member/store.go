package member

import (
	"context"
	"time"

	domain "gymdesk/internal/domain/member"
	"gymdesk/internal/domain/transaction"
)

// Store persists Member state.
type Store interface {
	GetByNumber(ctx context.Context, number int64) (domain.Member, error)
	FindByPhone(ctx context.Context, phone string) ([]domain.Member, error)
	SearchByName(ctx context.Context, query string, limit int) ([]domain.Member, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Member, error)
	ListAll(ctx context.Context) ([]domain.Member, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	Save(ctx context.Context, value domain.Member) error
	Delete(ctx context.Context, number int64) error
	CreateWithTransaction(ctx context.Context, value domain.Member, txn transaction.Transaction) (int64, error)
	CommitRenewal(ctx context.Context, number int64, newStart, newEnd time.Time, membershipType string, txn transaction.Transaction) error
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
	Search string // matches name or phone
	Sort   string
	Dir    string
}
