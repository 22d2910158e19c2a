package projections_test

import (
	"context"
	"testing"
	"time"

	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/member"
)

type fakeMemberStore struct {
	members []member.Member
}

func (s *fakeMemberStore) ListAll(_ context.Context) ([]member.Member, error) {
	return s.members, nil
}

type fakeVisitCounter struct {
	count int
	since time.Time
}

func (s *fakeVisitCounter) CountSince(_ context.Context, t time.Time) (int, error) {
	s.since = t
	return s.count, nil
}

type fakeRevenueStore struct {
	sum   int64
	since time.Time
}

func (s *fakeRevenueStore) SumAmountSince(_ context.Context, t time.Time) (int64, error) {
	s.since = t
	return s.sum, nil
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestGetDashboardCountsByFreshStatus(t *testing.T) {
	now := mustDate("2026-03-10")
	visits := &fakeVisitCounter{count: 7}
	revenue := &fakeRevenueStore{sum: 1200000}
	deps := projections.GetDashboardDeps{
		MemberStore: &fakeMemberStore{members: []member.Member{
			{ID: 1, StartDate: mustDate("2026-01-01"), EndDate: mustDate("2026-06-01")},
			{ID: 2, StartDate: mustDate("2026-01-01"), EndDate: mustDate("2026-03-17")},
			{ID: 3, StartDate: mustDate("2026-01-01"), EndDate: mustDate("2026-03-12")},
			{ID: 4, StartDate: mustDate("2025-01-01"), EndDate: mustDate("2025-06-01")},
			{ID: 5, StartDate: mustDate("2026-04-01"), EndDate: mustDate("2026-07-01")},
		}},
		VisitStore:       visits,
		TransactionStore: revenue,
	}

	res, err := projections.QueryGetDashboard(context.Background(), deps, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.TotalMembers != 5 {
		t.Errorf("TotalMembers = %d, want 5", res.TotalMembers)
	}
	if res.Active != 1 || res.ExpiringSoon != 2 || res.Expired != 1 || res.Inactive != 1 {
		t.Errorf("counts = active %d / soon %d / expired %d / inactive %d, want 1/2/1/1",
			res.Active, res.ExpiringSoon, res.Expired, res.Inactive)
	}
	if res.TodayCheckIns != 7 {
		t.Errorf("TodayCheckIns = %d, want 7", res.TodayCheckIns)
	}
	if res.MonthRevenue != 1200000 {
		t.Errorf("MonthRevenue = %d, want 1200000", res.MonthRevenue)
	}

	if !visits.since.Equal(mustDate("2026-03-10")) {
		t.Errorf("visit window starts %v, want midnight today", visits.since)
	}
	if !revenue.since.Equal(mustDate("2026-03-01")) {
		t.Errorf("revenue window starts %v, want first of month", revenue.since)
	}

	if len(res.ExpiringMembers) != 2 {
		t.Fatalf("ExpiringMembers = %d, want 2", len(res.ExpiringMembers))
	}
	if res.ExpiringMembers[0].ID != 3 {
		t.Errorf("expiring list not sorted soonest first: %v", res.ExpiringMembers[0].ID)
	}
}
