package projections_test

import (
	"context"
	"testing"
	"time"

	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/transaction"
	"gymdesk/internal/domain/visit"
)

type fakeReportTxnStore struct {
	recent []transaction.Transaction
	sums   map[string]int64 // keyed by YYYY-MM-DD of the window start
	limit  int
}

func (s *fakeReportTxnStore) ListRecent(_ context.Context, limit int) ([]transaction.Transaction, error) {
	s.limit = limit
	if limit < len(s.recent) {
		return s.recent[:limit], nil
	}
	return s.recent, nil
}

func (s *fakeReportTxnStore) SumAmountSince(_ context.Context, t time.Time) (int64, error) {
	return s.sums[t.Format("2006-01-02")], nil
}

func TestGetFinancialReportWindows(t *testing.T) {
	now := mustDate("2026-03-10")
	store := &fakeReportTxnStore{
		recent: []transaction.Transaction{
			{ID: "t-2", Amount: 300000},
			{ID: "t-1", Amount: 25000},
		},
		sums: map[string]int64{
			"2026-03-10": 25000,   // today
			"2026-03-01": 1500000, // month to date
		},
	}

	res, err := projections.QueryGetFinancialReport(context.Background(), projections.GetFinancialReportDeps{
		TransactionStore: store,
	}, 0, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.limit <= 0 {
		t.Error("zero limit must fall back to a positive default")
	}
	if len(res.Transactions) != 2 || res.Transactions[0].ID != "t-2" {
		t.Errorf("unexpected feed: %v", res.Transactions)
	}
	if res.TodayRevenue != 25000 {
		t.Errorf("TodayRevenue = %d, want 25000", res.TodayRevenue)
	}
	if res.MonthRevenue != 1500000 {
		t.Errorf("MonthRevenue = %d, want 1500000", res.MonthRevenue)
	}
}

type fakeCheckInLogStore struct {
	visits []visit.Visit
	since  time.Time
}

func (s *fakeCheckInLogStore) ListSince(_ context.Context, t time.Time) ([]visit.Visit, error) {
	s.since = t
	return s.visits, nil
}

func TestGetCheckInLogTalliesByMethod(t *testing.T) {
	store := &fakeCheckInLogStore{visits: []visit.Visit{
		{ID: "v-1", MemberID: 1, Method: visit.MethodManual},
		{ID: "v-2", MemberID: 2, Method: visit.MethodQR},
		{ID: "v-3", MemberID: 3, Method: visit.MethodManual},
	}}

	since := mustDate("2026-03-10")
	res, err := projections.QueryGetCheckInLog(context.Background(), projections.GetCheckInLogDeps{
		VisitStore: store,
	}, since)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !store.since.Equal(since) {
		t.Errorf("window starts %v, want %v", store.since, since)
	}
	if len(res.Visits) != 3 {
		t.Errorf("got %d visits, want 3", len(res.Visits))
	}
	if res.ByMethod[visit.MethodManual] != 2 || res.ByMethod[visit.MethodQR] != 1 {
		t.Errorf("unexpected tally: %v", res.ByMethod)
	}
}
