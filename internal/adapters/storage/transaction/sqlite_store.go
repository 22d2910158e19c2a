package transaction

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/transaction"
)

const txnColumns = "id, member_id, package_id, payment_method_id, amount, notes, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new transaction store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists a Transaction to the database.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Transaction) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO txn ("+txnColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		entity.ID,
		entity.MemberID,
		entity.PackageID,
		entity.PaymentMethodID,
		entity.Amount,
		entity.Notes,
		entity.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// ListByMember retrieves a member's payment history, newest first.
// PRE: memberID > 0
// POST: Returns zero or more transactions
func (s *SQLiteStore) ListByMember(ctx context.Context, memberID int64) ([]domain.Transaction, error) {
	query := "SELECT " + txnColumns + " FROM txn WHERE member_id = ? ORDER BY created_at DESC"
	rows, err := s.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// ListRecent retrieves the most recent transactions across all members.
// PRE: limit > 0
// POST: Returns up to limit transactions, newest first
func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]domain.Transaction, error) {
	query := "SELECT " + txnColumns + " FROM txn ORDER BY created_at DESC LIMIT ?"
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// CountByPackage returns how many transactions reference a package.
// PRE: packageID > 0
// POST: Returns count >= 0
func (s *SQLiteStore) CountByPackage(ctx context.Context, packageID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM txn WHERE package_id = ?", packageID).Scan(&count)
	return count, err
}

// SumAmountSince totals payment amounts recorded at or after t.
// PRE: t is a valid time
// POST: Returns sum >= 0
func (s *SQLiteStore) SumAmountSince(ctx context.Context, t time.Time) (int64, error) {
	var sum sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT SUM(amount) FROM txn WHERE created_at >= ?",
		t.UTC().Format(time.RFC3339),
	).Scan(&sum)
	if err != nil {
		return 0, err
	}
	return sum.Int64, nil
}

func collectTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	var results []domain.Transaction
	for rows.Next() {
		var entity domain.Transaction
		var createdAt string
		if err := rows.Scan(
			&entity.ID,
			&entity.MemberID,
			&entity.PackageID,
			&entity.PaymentMethodID,
			&entity.Amount,
			&entity.Notes,
			&createdAt,
		); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("bad created_at for transaction %s: %w", entity.ID, err)
		}
		entity.CreatedAt = t
		results = append(results, entity)
	}
	return results, rows.Err()
}
