package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"gymdesk/internal/domain/checkin"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/search"
	"gymdesk/internal/domain/visit"

	"github.com/google/uuid"
)

// CheckInVisitStore defines the visit store interface needed for check-in.
type CheckInVisitStore interface {
	Save(ctx context.Context, v visit.Visit) error
}

// CheckInDeps holds dependencies for CheckIn.
type CheckInDeps struct {
	Directory  MemberDirectory
	VisitStore CheckInVisitStore
}

// CheckInResult carries the resolved member and the admission decision.
type CheckInResult struct {
	Member   member.Member
	Decision checkin.Decision
}

// ExecuteCheckIn coordinates a front-desk or QR check-in: resolve the
// criterion to one member, classify, decide admission, and record a
// visit when admitted.
// PRE: criterion is non-nil; method is a valid visit method
// POST: Visit recorded iff the decision admits; decision returned either way
// INVARIANT: Denied check-ins leave no state behind
func ExecuteCheckIn(ctx context.Context, criterion search.Criterion, method string, deps CheckInDeps, now time.Time) (CheckInResult, error) {
	m, err := ExecuteResolveMember(ctx, criterion, ResolveMemberDeps{Directory: deps.Directory})
	if err != nil {
		return CheckInResult{}, err
	}

	decision := checkin.Decide(m, now)

	if decision.CanEnter {
		v := visit.Visit{
			ID:          uuid.New().String(),
			MemberID:    m.ID,
			Method:      method,
			CheckInTime: now,
		}
		if err := v.Validate(); err != nil {
			return CheckInResult{}, err
		}
		if err := deps.VisitStore.Save(ctx, v); err != nil {
			return CheckInResult{}, err
		}
	}

	slog.Info("checkin_event",
		"event", "checkin_decided",
		"member_id", m.ID,
		"name", m.Name,
		"status", decision.Status,
		"can_enter", decision.CanEnter,
		"method", method,
	)

	return CheckInResult{Member: m, Decision: decision}, nil
}
