package projections

import (
	"context"

	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/transaction"
	"gymdesk/internal/domain/visit"
)

// visitHistoryLimit caps how many check-ins the history view loads.
const visitHistoryLimit = 50

// HistoryMemberStore defines the member store interface needed by the
// history projection.
type HistoryMemberStore interface {
	GetByNumber(ctx context.Context, number int64) (member.Member, error)
}

// HistoryTransactionStore defines the transaction store interface
// needed by the history projection.
type HistoryTransactionStore interface {
	ListByMember(ctx context.Context, memberID int64) ([]transaction.Transaction, error)
}

// HistoryVisitStore defines the visit store interface needed by the
// history projection.
type HistoryVisitStore interface {
	ListByMember(ctx context.Context, memberID int64, limit int) ([]visit.Visit, error)
}

// GetMemberHistoryDeps holds dependencies for the history projection.
type GetMemberHistoryDeps struct {
	MemberStore      HistoryMemberStore
	TransactionStore HistoryTransactionStore
	VisitStore       HistoryVisitStore
}

// MemberHistoryResult carries a member's payment and visit history,
// newest first.
type MemberHistoryResult struct {
	Member       member.Member
	Transactions []transaction.Transaction
	Visits       []visit.Visit
}

// QueryGetMemberHistory loads everything the front desk sees on a
// member's detail page: the record itself, every payment, and recent
// check-ins.
// PRE: number identifies an existing member
// POST: Returns the full history, or member.ErrNotFound (wrapped)
func QueryGetMemberHistory(ctx context.Context, deps GetMemberHistoryDeps, number int64) (MemberHistoryResult, error) {
	m, err := deps.MemberStore.GetByNumber(ctx, number)
	if err != nil {
		return MemberHistoryResult{}, err
	}

	txns, err := deps.TransactionStore.ListByMember(ctx, number)
	if err != nil {
		return MemberHistoryResult{}, err
	}
	visits, err := deps.VisitStore.ListByMember(ctx, number, visitHistoryLimit)
	if err != nil {
		return MemberHistoryResult{}, err
	}

	return MemberHistoryResult{Member: m, Transactions: txns, Visits: visits}, nil
}
