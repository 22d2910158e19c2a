package paymentmethod

import (
	"context"

	domain "gymdesk/internal/domain/paymentmethod"
)

// Store persists PaymentMethod state.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.PaymentMethod, error)
	List(ctx context.Context) ([]domain.PaymentMethod, error)
	Save(ctx context.Context, value domain.PaymentMethod) error
	Delete(ctx context.Context, id int64) error
}
