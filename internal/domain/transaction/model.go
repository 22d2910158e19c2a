package transaction

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrNoMember       = errors.New("transaction must reference a member")
	ErrNoPackage      = errors.New("transaction must reference a package")
	ErrNegativeAmount = errors.New("transaction amount cannot be negative")
)

// Transaction records a payment tied to a membership purchase, renewal,
// or day pass. Written atomically with the membership date change it
// pays for — either both persist or neither does.
type Transaction struct {
	ID              string
	MemberID        int64
	PackageID       int64
	PaymentMethodID int64
	Amount          int64
	Notes           string
	CreatedAt       time.Time
}

// Validate checks if the Transaction has valid data.
// PRE: Transaction struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (t *Transaction) Validate() error {
	if t.MemberID <= 0 {
		return ErrNoMember
	}
	if t.PackageID <= 0 {
		return ErrNoPackage
	}
	if t.Amount < 0 {
		return ErrNegativeAmount
	}
	return nil
}
