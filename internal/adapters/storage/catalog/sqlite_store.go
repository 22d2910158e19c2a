package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/catalog"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new package store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Package by its ID.
// PRE: id > 0
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Package, error) {
	query := "SELECT id, name, duration_months, price, active FROM package WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	var entity domain.Package
	err := row.Scan(&entity.ID, &entity.Name, &entity.DurationMonths, &entity.Price, &entity.Active)
	if err == sql.ErrNoRows {
		return domain.Package{}, fmt.Errorf("package not found: %w", err)
	}
	return entity, err
}

// GetDayPass retrieves the active zero-duration package used for
// walk-in sales.
// PRE: none
// POST: Returns the day pass or an error when none is configured
func (s *SQLiteStore) GetDayPass(ctx context.Context) (domain.Package, error) {
	query := "SELECT id, name, duration_months, price, active FROM package WHERE duration_months = 0 AND active = 1 ORDER BY id LIMIT 1"
	row := s.db.QueryRowContext(ctx, query)

	var entity domain.Package
	err := row.Scan(&entity.ID, &entity.Name, &entity.DurationMonths, &entity.Price, &entity.Active)
	if err == sql.ErrNoRows {
		return domain.Package{}, fmt.Errorf("no day pass package: %w", err)
	}
	return entity, err
}

// List retrieves all packages, optionally including deactivated ones.
// PRE: none
// POST: Returns packages ordered by duration then name
func (s *SQLiteStore) List(ctx context.Context, includeInactive bool) ([]domain.Package, error) {
	query := "SELECT id, name, duration_months, price, active FROM package"
	if !includeInactive {
		query += " WHERE active = 1"
	}
	query += " ORDER BY duration_months, name"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Package
	for rows.Next() {
		var entity domain.Package
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.DurationMonths, &entity.Price, &entity.Active); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Save persists a Package to the database. A zero ID inserts a new row.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Package) error {
	if entity.ID == 0 {
		_, err := s.db.ExecContext(ctx,
			"INSERT INTO package (name, duration_months, price, active) VALUES (?, ?, ?, ?)",
			entity.Name, entity.DurationMonths, entity.Price, entity.Active,
		)
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO package (id, name, duration_months, price, active) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, duration_months=excluded.duration_months,
			price=excluded.price, active=excluded.active`,
		entity.ID, entity.Name, entity.DurationMonths, entity.Price, entity.Active,
	)
	return err
}

// Delete removes a Package from the database.
// PRE: id > 0; no transaction history references the package
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM package WHERE id = ?", id)
	return err
}
