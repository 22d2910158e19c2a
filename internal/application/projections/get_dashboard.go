package projections

import (
	"context"
	"time"

	"gymdesk/internal/domain/datemath"
	"gymdesk/internal/domain/member"
)

// DashboardMemberStore defines the member store interface needed by the
// dashboard projection.
type DashboardMemberStore interface {
	ListAll(ctx context.Context) ([]member.Member, error)
}

// DashboardVisitStore defines the visit store interface needed by the
// dashboard projection.
type DashboardVisitStore interface {
	CountSince(ctx context.Context, t time.Time) (int, error)
}

// DashboardTransactionStore defines the transaction store interface
// needed by the dashboard projection.
type DashboardTransactionStore interface {
	SumAmountSince(ctx context.Context, t time.Time) (int64, error)
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	MemberStore      DashboardMemberStore
	VisitStore       DashboardVisitStore
	TransactionStore DashboardTransactionStore
}

// DashboardResult carries the front-page numbers for the admin console.
type DashboardResult struct {
	TotalMembers  int
	Active        int
	ExpiringSoon  int
	Expired       int
	Inactive      int
	TodayCheckIns int
	MonthRevenue  int64

	// ExpiringMembers lists who needs a renewal nudge, soonest first.
	ExpiringMembers []member.Member
}

// QueryGetDashboard aggregates membership counts, today's check-ins,
// and this month's revenue. Status is classified fresh per member —
// nothing here reads a stored status.
// PRE: stores are reachable
// POST: Returns a complete result; partial store failures abort
func QueryGetDashboard(ctx context.Context, deps GetDashboardDeps, now time.Time) (DashboardResult, error) {
	members, err := deps.MemberStore.ListAll(ctx)
	if err != nil {
		return DashboardResult{}, err
	}

	result := DashboardResult{TotalMembers: len(members)}
	for _, m := range members {
		switch m.Status(now) {
		case member.StatusActive:
			result.Active++
		case member.StatusExpiringSoon:
			result.ExpiringSoon++
			result.ExpiringMembers = append(result.ExpiringMembers, m)
		case member.StatusExpired:
			result.Expired++
		case member.StatusInactive:
			result.Inactive++
		}
	}

	sortByEndDate(result.ExpiringMembers)

	startOfDay := datemath.Truncate(now)
	checkIns, err := deps.VisitStore.CountSince(ctx, startOfDay)
	if err != nil {
		return DashboardResult{}, err
	}
	result.TodayCheckIns = checkIns

	y, mo, _ := now.UTC().Date()
	startOfMonth := time.Date(y, mo, 1, 0, 0, 0, 0, time.UTC)
	revenue, err := deps.TransactionStore.SumAmountSince(ctx, startOfMonth)
	if err != nil {
		return DashboardResult{}, err
	}
	result.MonthRevenue = revenue

	return result, nil
}

func sortByEndDate(members []member.Member) {
	for i := 1; i < len(members); i++ {
		for j := i; j > 0 && members[j].EndDate.Before(members[j-1].EndDate); j-- {
			members[j], members[j-1] = members[j-1], members[j]
		}
	}
}
