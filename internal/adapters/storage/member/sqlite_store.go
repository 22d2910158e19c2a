package member

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gymdesk/internal/adapters/storage"
	"gymdesk/internal/domain/datemath"
	domain "gymdesk/internal/domain/member"
	"gymdesk/internal/domain/transaction"
)

const memberColumns = "id, name, phone, email, membership_type, start_date, end_date, notes, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new member store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// scanner matches both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMember(row scanner) (domain.Member, error) {
	var entity domain.Member
	var startDate, endDate, createdAt string
	err := row.Scan(
		&entity.ID,
		&entity.Name,
		&entity.Phone,
		&entity.Email,
		&entity.MembershipType,
		&startDate,
		&endDate,
		&entity.Notes,
		&createdAt,
	)
	if err != nil {
		return domain.Member{}, err
	}
	if entity.StartDate, err = datemath.ParseDate(startDate); err != nil {
		return domain.Member{}, fmt.Errorf("bad start_date for member %d: %w", entity.ID, err)
	}
	if entity.EndDate, err = datemath.ParseDate(endDate); err != nil {
		return domain.Member{}, fmt.Errorf("bad end_date for member %d: %w", entity.ID, err)
	}
	if entity.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return domain.Member{}, fmt.Errorf("bad created_at for member %d: %w", entity.ID, err)
	}
	return entity, nil
}

// GetByNumber retrieves a Member by its member number.
// PRE: number > 0
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByNumber(ctx context.Context, number int64) (domain.Member, error) {
	query := "SELECT " + memberColumns + " FROM member WHERE id = ?"
	entity, err := scanMember(s.db.QueryRowContext(ctx, query, number))
	if err == sql.ErrNoRows {
		return domain.Member{}, fmt.Errorf("member %d: %w", number, domain.ErrNotFound)
	}
	return entity, err
}

// FindByPhone retrieves all members with the given phone number.
// Phones are not unique: family members share them, so callers must be
// prepared for more than one row.
// PRE: phone is non-empty
// POST: Returns zero or more members, newest first
func (s *SQLiteStore) FindByPhone(ctx context.Context, phone string) ([]domain.Member, error) {
	query := "SELECT " + memberColumns + " FROM member WHERE phone = ? ORDER BY id DESC"
	rows, err := s.db.QueryContext(ctx, query, phone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMembers(rows)
}

// SearchByName finds members whose name matches the query (case-insensitive LIKE).
// PRE: query is non-empty, limit > 0
// POST: Returns matching members ordered by name
func (s *SQLiteStore) SearchByName(ctx context.Context, query string, limit int) ([]domain.Member, error) {
	q := "SELECT " + memberColumns + " FROM member WHERE name LIKE ? ORDER BY name LIMIT ?"
	rows, err := s.db.QueryContext(ctx, q, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMembers(rows)
}

// listWhereClause builds the WHERE clause and args for List/Count queries.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any

	if filter.Search != "" {
		where += " AND (name LIKE ? OR phone LIKE ?)"
		term := "%" + filter.Search + "%"
		args = append(args, term, term)
	}
	return where, args
}

// sortClause returns a safe ORDER BY clause. Only allowed columns are accepted.
func sortClause(filter ListFilter) string {
	allowed := map[string]string{
		"name": "name", "end_date": "end_date",
		"start_date": "start_date", "id": "id",
	}
	col, ok := allowed[filter.Sort]
	if !ok {
		return " ORDER BY id DESC"
	}
	dir := "ASC"
	if filter.Dir == "desc" {
		dir = "DESC"
	}
	return " ORDER BY " + col + " " + dir
}

// Count returns the total number of members matching the filter.
// PRE: filter has valid parameters
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM member"+where, args...).Scan(&count)
	return count, err
}

// List retrieves a page of Members based on the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Member, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + memberColumns + " FROM member" + where
	query += sortClause(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMembers(rows)
}

// ListAll retrieves every member. Status is derived at read time, so
// dashboard and reminder runs classify the full roster in memory.
// PRE: none
// POST: Returns all members
func (s *SQLiteStore) ListAll(ctx context.Context) ([]domain.Member, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+memberColumns+" FROM member ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMembers(rows)
}

// Save persists a Member to the database.
// PRE: entity has been validated and has a member number
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Member) error {
	query := `INSERT INTO member (id, name, phone, email, membership_type, start_date, end_date, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, phone=excluded.phone, email=excluded.email,
			membership_type=excluded.membership_type, start_date=excluded.start_date,
			end_date=excluded.end_date, notes=excluded.notes`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.Phone,
		entity.Email,
		entity.MembershipType,
		datemath.FormatDate(entity.StartDate),
		datemath.FormatDate(entity.EndDate),
		entity.Notes,
		entity.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// Delete removes a Member together with their payment and visit
// history in one database transaction. Every member carries at least
// one txn row from registration, and those rows reference the member
// by foreign key, so history has to go in the same transaction.
// PRE: number > 0
// POST: Member, txn, and visit rows removed, or none of them
func (s *SQLiteStore) Delete(ctx context.Context, number int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM visit WHERE member_id = ?", number); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM txn WHERE member_id = ?", number); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM member WHERE id = ?", number)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("member %d: %w", number, domain.ErrNotFound)
	}
	return tx.Commit()
}

// CreateWithTransaction inserts a new member and its purchase record in
// one database transaction, returning the assigned member number.
// PRE: entity has been validated; txn.MemberID is filled in here
// POST: Both rows persisted, or neither
func (s *SQLiteStore) CreateWithTransaction(ctx context.Context, entity domain.Member, txn transaction.Transaction) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO member (name, phone, email, membership_type, start_date, end_date, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entity.Name,
		entity.Phone,
		entity.Email,
		entity.MembershipType,
		datemath.FormatDate(entity.StartDate),
		datemath.FormatDate(entity.EndDate),
		entity.Notes,
		entity.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	number, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO txn (id, member_id, package_id, payment_method_id, amount, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		txn.ID,
		number,
		txn.PackageID,
		txn.PaymentMethodID,
		txn.Amount,
		txn.Notes,
		txn.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return number, nil
}

// CommitRenewal updates the membership date range and label and inserts
// the payment record in one database transaction.
// PRE: number identifies an existing member; txn has been validated
// POST: Both writes persisted, or neither
func (s *SQLiteStore) CommitRenewal(ctx context.Context, number int64, newStart, newEnd time.Time, membershipType string, txn transaction.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE member SET start_date = ?, end_date = ?, membership_type = ? WHERE id = ?",
		datemath.FormatDate(newStart),
		datemath.FormatDate(newEnd),
		membershipType,
		number,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("member not found: %d", number)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO txn (id, member_id, package_id, payment_method_id, amount, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		txn.ID,
		number,
		txn.PackageID,
		txn.PaymentMethodID,
		txn.Amount,
		txn.Notes,
		txn.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func collectMembers(rows *sql.Rows) ([]domain.Member, error) {
	var results []domain.Member
	for rows.Next() {
		entity, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
