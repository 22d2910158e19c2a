package paymentmethod

import (
	"context"
	"database/sql"
	"fmt"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/paymentmethod"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new payment method store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a PaymentMethod by its ID.
// PRE: id > 0
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.PaymentMethod, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, active FROM payment_method WHERE id = ?", id)

	var entity domain.PaymentMethod
	err := row.Scan(&entity.ID, &entity.Name, &entity.Active)
	if err == sql.ErrNoRows {
		return domain.PaymentMethod{}, fmt.Errorf("payment method not found: %w", err)
	}
	return entity, err
}

// List retrieves all payment methods.
// PRE: none
// POST: Returns methods ordered by id
func (s *SQLiteStore) List(ctx context.Context) ([]domain.PaymentMethod, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, active FROM payment_method ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.PaymentMethod
	for rows.Next() {
		var entity domain.PaymentMethod
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.Active); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Save persists a PaymentMethod to the database. A zero ID inserts a new row.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.PaymentMethod) error {
	if entity.ID == 0 {
		_, err := s.db.ExecContext(ctx,
			"INSERT INTO payment_method (name, active) VALUES (?, ?)",
			entity.Name, entity.Active,
		)
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payment_method (id, name, active) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, active=excluded.active`,
		entity.ID, entity.Name, entity.Active,
	)
	return err
}

// Delete removes a PaymentMethod from the database.
// PRE: id > 0
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM payment_method WHERE id = ?", id)
	return err
}
