package paymentmethod

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyName = errors.New("payment method name cannot be empty")
)

// PaymentMethod is a way members pay: cash, card, bank transfer, QRIS.
type PaymentMethod struct {
	ID     int64
	Name   string
	Active bool
}

// Validate checks if the PaymentMethod has valid data.
// PRE: PaymentMethod struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (p *PaymentMethod) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
