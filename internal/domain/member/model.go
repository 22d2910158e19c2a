package member

import (
	"errors"
	"strings"
	"time"

	"gymdesk/internal/domain/datemath"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Membership status values, derived from the date range on every read
// and never persisted.
const (
	StatusActive       = "active"
	StatusExpiringSoon = "expiring_soon"
	StatusExpired      = "expired"
	StatusInactive     = "inactive"
)

// ExpiringSoonWindowDays is the inclusive window before the end date in
// which a membership counts as expiring soon.
const ExpiringSoonWindowDays = 7

// Domain errors
var (
	ErrEmptyName        = errors.New("member name cannot be empty")
	ErrEndBeforeStart   = errors.New("end date cannot be before start date")
	ErrMissingDateRange = errors.New("member must have start and end dates")

	// ErrNotFound is wrapped by stores when a member number does not
	// exist, so callers can tell "no such member" from a store failure.
	ErrNotFound = errors.New("member not found")
)

// Member holds state for a gym member. The member number (ID) is
// assigned by storage at creation and is the one identifier that can
// never be ambiguous. MembershipType is a label copied from the package
// name at purchase time, not a live reference.
type Member struct {
	ID             int64
	Name           string
	Phone          string
	Email          string
	MembershipType string
	StartDate      time.Time
	EndDate        time.Time
	Notes          string
	CreatedAt      time.Time
}

// Validate checks if the Member has valid data.
// PRE: Member struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: EndDate >= StartDate
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if len(m.Name) > MaxNameLength {
		return errors.New("member name cannot exceed 100 characters")
	}
	if m.Email != "" && !strings.Contains(m.Email, "@") {
		return errors.New("member email must be valid")
	}
	if m.StartDate.IsZero() || m.EndDate.IsZero() {
		return ErrMissingDateRange
	}
	if datemath.Truncate(m.EndDate).Before(datemath.Truncate(m.StartDate)) {
		return ErrEndBeforeStart
	}
	return nil
}

// Classify derives the membership status from the date range.
// Rules are evaluated in order, first match wins:
// not yet begun -> inactive, past end -> expired,
// within the 7-day window (inclusive) -> expiring_soon, else active.
// PRE: start and end are valid dates with end >= start
// POST: Returns one of the Status* constants
// INVARIANT: Pure function of (start, end, now); no hidden state
func Classify(start, end, now time.Time) string {
	day := datemath.Truncate(now)
	if day.Before(datemath.Truncate(start)) {
		return StatusInactive
	}
	if day.After(datemath.Truncate(end)) {
		return StatusExpired
	}
	if datemath.DaysUntil(end, now) <= ExpiringSoonWindowDays {
		return StatusExpiringSoon
	}
	return StatusActive
}

// DaysRemaining returns whole calendar days until the end date.
// Negative once the membership has expired.
func DaysRemaining(end, now time.Time) int {
	return datemath.DaysUntil(end, now)
}

// Status derives the member's current lifecycle status.
// INVARIANT: Member fields are not mutated
func (m *Member) Status(now time.Time) string {
	return Classify(m.StartDate, m.EndDate, now)
}

// DaysRemaining returns whole days until this member's end date.
// INVARIANT: Member fields are not mutated
func (m *Member) DaysRemaining(now time.Time) int {
	return DaysRemaining(m.EndDate, now)
}

// IsExpired returns true once the end date has passed.
func (m *Member) IsExpired(now time.Time) bool {
	return m.Status(now) == StatusExpired
}
