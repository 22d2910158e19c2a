package projections

import (
	"context"
	"time"

	"gymdesk/internal/domain/datemath"
	"gymdesk/internal/domain/transaction"
)

// defaultReportLimit caps the recent-transactions list when the caller
// does not ask for a specific page size.
const defaultReportLimit = 50

// ReportTransactionStore defines the transaction store interface needed
// by the financial report.
type ReportTransactionStore interface {
	ListRecent(ctx context.Context, limit int) ([]transaction.Transaction, error)
	SumAmountSince(ctx context.Context, t time.Time) (int64, error)
}

// GetFinancialReportDeps holds dependencies for the financial report.
type GetFinancialReportDeps struct {
	TransactionStore ReportTransactionStore
}

// FinancialReportResult carries the payment feed and revenue totals.
type FinancialReportResult struct {
	Transactions []transaction.Transaction
	TodayRevenue int64
	MonthRevenue int64
}

// QueryGetFinancialReport loads the recent payment feed plus revenue
// for today and the calendar month containing now.
// PRE: limit >= 0 (0 means the default page size)
// POST: Returns up to limit transactions, newest first
func QueryGetFinancialReport(ctx context.Context, deps GetFinancialReportDeps, limit int, now time.Time) (FinancialReportResult, error) {
	if limit <= 0 {
		limit = defaultReportLimit
	}

	txns, err := deps.TransactionStore.ListRecent(ctx, limit)
	if err != nil {
		return FinancialReportResult{}, err
	}

	today, err := deps.TransactionStore.SumAmountSince(ctx, datemath.Truncate(now))
	if err != nil {
		return FinancialReportResult{}, err
	}

	y, mo, _ := now.UTC().Date()
	month, err := deps.TransactionStore.SumAmountSince(ctx, time.Date(y, mo, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return FinancialReportResult{}, err
	}

	return FinancialReportResult{Transactions: txns, TodayRevenue: today, MonthRevenue: month}, nil
}
