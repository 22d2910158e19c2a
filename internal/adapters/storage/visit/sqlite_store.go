package visit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/visit"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new visit store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists a Visit to the database.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Visit) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO visit (id, member_id, method, check_in_time) VALUES (?, ?, ?, ?)",
		entity.ID,
		entity.MemberID,
		entity.Method,
		entity.CheckInTime.UTC().Format(time.RFC3339),
	)
	return err
}

// ListByMember retrieves a member's visit history, newest first.
// PRE: memberID > 0, limit > 0
// POST: Returns up to limit visits
func (s *SQLiteStore) ListByMember(ctx context.Context, memberID int64, limit int) ([]domain.Visit, error) {
	query := "SELECT id, member_id, method, check_in_time FROM visit WHERE member_id = ? ORDER BY check_in_time DESC LIMIT ?"
	rows, err := s.db.QueryContext(ctx, query, memberID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectVisits(rows)
}

// ListSince retrieves all visits at or after t, newest first.
// PRE: t is a valid time
// POST: Returns zero or more visits
func (s *SQLiteStore) ListSince(ctx context.Context, t time.Time) ([]domain.Visit, error) {
	query := "SELECT id, member_id, method, check_in_time FROM visit WHERE check_in_time >= ? ORDER BY check_in_time DESC"
	rows, err := s.db.QueryContext(ctx, query, t.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectVisits(rows)
}

// CountSince returns the number of visits at or after t.
// PRE: t is a valid time
// POST: Returns count >= 0
func (s *SQLiteStore) CountSince(ctx context.Context, t time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM visit WHERE check_in_time >= ?",
		t.UTC().Format(time.RFC3339),
	).Scan(&count)
	return count, err
}

func collectVisits(rows *sql.Rows) ([]domain.Visit, error) {
	var results []domain.Visit
	for rows.Next() {
		var entity domain.Visit
		var checkIn string
		if err := rows.Scan(&entity.ID, &entity.MemberID, &entity.Method, &checkIn); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, checkIn)
		if err != nil {
			return nil, fmt.Errorf("bad check_in_time for visit %s: %w", entity.ID, err)
		}
		entity.CheckInTime = t
		results = append(results, entity)
	}
	return results, rows.Err()
}
