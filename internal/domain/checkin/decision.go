// Package checkin decides entry admission from a resolved member's
// lifecycle status. The decision is stateless per call: same-day
// re-entry deduplication is the visit log's concern, not this one's.
package checkin

import (
	"fmt"
	"time"

	"gymdesk/internal/domain/member"
)

// Decision is the admission outcome for a single check-in attempt.
type Decision struct {
	CanEnter      bool
	Status        string
	Message       string
	Warning       string // non-blocking, set when admission comes with a caveat
	DaysRemaining int
}

// Decide gates entry based on the member's derived status.
// Admit on active or expiring_soon (with a warning); deny on expired
// or inactive with a reason naming the status.
// PRE: m is a valid member snapshot
// POST: Returns a complete Decision; no state is recorded
// INVARIANT: Pure function of (member, now)
func Decide(m member.Member, now time.Time) Decision {
	status := m.Status(now)
	days := m.DaysRemaining(now)

	switch status {
	case member.StatusActive:
		return Decision{
			CanEnter:      true,
			Status:        status,
			Message:       fmt.Sprintf("Welcome, %s!", m.Name),
			DaysRemaining: days,
		}
	case member.StatusExpiringSoon:
		return Decision{
			CanEnter:      true,
			Status:        status,
			Message:       fmt.Sprintf("Welcome, %s!", m.Name),
			Warning:       fmt.Sprintf("Membership expires in %d days", days),
			DaysRemaining: days,
		}
	case member.StatusInactive:
		return Decision{
			CanEnter: false,
			Status:   status,
			Message:  fmt.Sprintf("Membership has not started yet (begins %s)", m.StartDate.Format("2006-01-02")),
		}
	default: // expired
		return Decision{
			CanEnter:      false,
			Status:        member.StatusExpired,
			Message:       fmt.Sprintf("Membership expired on %s — please renew", m.EndDate.Format("2006-01-02")),
			DaysRemaining: days,
		}
	}
}
