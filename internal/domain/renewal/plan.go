// Package renewal computes new membership date ranges for renewals and
// extensions. The policy: members who renew before expiry keep every
// paid-for day (the new term is appended after the current end date);
// lapsed members start fresh from today with no credit for the gap.
package renewal

import (
	"errors"
	"time"

	"gymdesk/internal/domain/datemath"
)

// Domain errors
var (
	// ErrDayPassRenewal rejects renewing an existing membership onto a
	// day pass. Day passes are a walk-in product, not a renewal term.
	ErrDayPassRenewal = errors.New("day pass cannot be used to renew an existing membership")

	ErrNegativeDuration = errors.New("package duration cannot be negative")
)

// Preview is the projection shown to the operator before committing a
// renewal. It is derived, never stored.
type Preview struct {
	PackageName    string
	DurationMonths int
	CurrentEndDate time.Time
	NewStartDate   time.Time
	NewEndDate     time.Time
	ExtensionDays  int
	IsExpired      bool
}

// Plan computes the new date range for a renewal.
// PRE: currentEnd and now are valid dates
// POST: Returns the preview, or a policy/validation error
// INVARIANT: Not expired -> NewStartDate = currentEnd (no paid time
// lost). Expired -> NewStartDate = now (no backdating, no catch-up).
func Plan(packageName string, currentEnd, now time.Time, durationMonths int) (Preview, error) {
	if durationMonths < 0 {
		return Preview{}, ErrNegativeDuration
	}
	if durationMonths == 0 {
		return Preview{}, ErrDayPassRenewal
	}

	endDay := datemath.Truncate(currentEnd)
	nowDay := datemath.Truncate(now)

	expired := !endDay.After(nowDay)
	newStart := endDay
	if expired {
		newStart = nowDay
	}
	newEnd := datemath.AddMonths(newStart, durationMonths)

	return Preview{
		PackageName:    packageName,
		DurationMonths: durationMonths,
		CurrentEndDate: endDay,
		NewStartDate:   newStart,
		NewEndDate:     newEnd,
		// Can exceed the term length when renewing from an expired
		// state; the gap is surfaced to the operator, not hidden.
		ExtensionDays: datemath.DaysBetween(endDay, newEnd),
		IsExpired:     expired,
	}, nil
}
