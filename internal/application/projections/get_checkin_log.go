package projections

import (
	"context"
	"time"

	"gymdesk/internal/domain/visit"
)

// CheckInLogVisitStore defines the visit store interface needed by the
// check-in log.
type CheckInLogVisitStore interface {
	ListSince(ctx context.Context, t time.Time) ([]visit.Visit, error)
}

// GetCheckInLogDeps holds dependencies for the check-in log.
type GetCheckInLogDeps struct {
	VisitStore CheckInLogVisitStore
}

// CheckInLogResult carries the raw visit feed plus a per-method tally.
type CheckInLogResult struct {
	Visits   []visit.Visit
	ByMethod map[string]int
}

// QueryGetCheckInLog loads every check-in at or after since, newest
// first, tallied by entry method.
// PRE: since is a valid time
// POST: ByMethod counts sum to len(Visits)
func QueryGetCheckInLog(ctx context.Context, deps GetCheckInLogDeps, since time.Time) (CheckInLogResult, error) {
	visits, err := deps.VisitStore.ListSince(ctx, since)
	if err != nil {
		return CheckInLogResult{}, err
	}

	byMethod := make(map[string]int)
	for _, v := range visits {
		byMethod[v.Method]++
	}

	return CheckInLogResult{Visits: visits, ByMethod: byMethod}, nil
}
