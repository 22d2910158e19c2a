package catalog

import (
	"context"

	domain "gymdesk/internal/domain/catalog"
)

// Store persists Package state.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.Package, error)
	GetDayPass(ctx context.Context) (domain.Package, error)
	List(ctx context.Context, includeInactive bool) ([]domain.Package, error)
	Save(ctx context.Context, value domain.Package) error
	Delete(ctx context.Context, id int64) error
}
