package catalog

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 60
)

// Domain errors
var (
	ErrEmptyName        = errors.New("package name cannot be empty")
	ErrNegativeDuration = errors.New("package duration cannot be negative")
	ErrNegativePrice    = errors.New("package price cannot be negative")
	ErrAlreadyInactive  = errors.New("package is already deactivated")
)

// Package is a membership product: a named duration at a price.
// DurationMonths of zero denotes a day pass — a single-calendar-day
// membership sold to walk-ins.
type Package struct {
	ID             int64
	Name           string
	DurationMonths int
	Price          int64
	Active         bool
}

// Validate checks if the Package has valid data.
// PRE: Package struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (p *Package) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Name) > MaxNameLength {
		return errors.New("package name cannot exceed 60 characters")
	}
	if p.DurationMonths < 0 {
		return ErrNegativeDuration
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// IsDayPass returns true for the single-day walk-in product.
// INVARIANT: Package fields are not mutated
func (p *Package) IsDayPass() bool {
	return p.DurationMonths == 0
}

// Deactivate soft-deletes the package. Used instead of hard deletion
// when transaction history references it.
// PRE: Package is active
// POST: Active is false
func (p *Package) Deactivate() error {
	if !p.Active {
		return ErrAlreadyInactive
	}
	p.Active = false
	return nil
}
