package projections_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/transaction"
	"gymdesk/internal/domain/visit"
)

type fakeHistoryMemberStore struct {
	members map[int64]member.Member
}

func (s *fakeHistoryMemberStore) GetByNumber(_ context.Context, number int64) (member.Member, error) {
	m, ok := s.members[number]
	if !ok {
		return member.Member{}, member.ErrNotFound
	}
	return m, nil
}

type fakeHistoryTxnStore struct {
	txns []transaction.Transaction
}

func (s *fakeHistoryTxnStore) ListByMember(_ context.Context, memberID int64) ([]transaction.Transaction, error) {
	var out []transaction.Transaction
	for _, txn := range s.txns {
		if txn.MemberID == memberID {
			out = append(out, txn)
		}
	}
	return out, nil
}

type fakeHistoryVisitStore struct {
	visits []visit.Visit
	limit  int
}

func (s *fakeHistoryVisitStore) ListByMember(_ context.Context, memberID int64, limit int) ([]visit.Visit, error) {
	s.limit = limit
	var out []visit.Visit
	for _, v := range s.visits {
		if len(out) == limit {
			break
		}
		if v.MemberID == memberID {
			out = append(out, v)
		}
	}
	return out, nil
}

func TestGetMemberHistoryCollectsPaymentsAndVisits(t *testing.T) {
	visits := &fakeHistoryVisitStore{visits: []visit.Visit{
		{ID: "v-1", MemberID: 7, Method: visit.MethodManual, CheckInTime: mustDate("2026-03-01")},
		{ID: "v-2", MemberID: 7, Method: visit.MethodQR, CheckInTime: mustDate("2026-03-05")},
		{ID: "v-3", MemberID: 9, Method: visit.MethodManual, CheckInTime: mustDate("2026-03-05")},
	}}
	deps := projections.GetMemberHistoryDeps{
		MemberStore: &fakeHistoryMemberStore{members: map[int64]member.Member{
			7: {ID: 7, Name: "Budi Santoso"},
		}},
		TransactionStore: &fakeHistoryTxnStore{txns: []transaction.Transaction{
			{ID: "t-1", MemberID: 7, Amount: 300000, CreatedAt: time.Now()},
			{ID: "t-2", MemberID: 7, Amount: 300000, CreatedAt: time.Now()},
			{ID: "t-3", MemberID: 9, Amount: 25000, CreatedAt: time.Now()},
		}},
		VisitStore: visits,
	}

	res, err := projections.QueryGetMemberHistory(context.Background(), deps, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Member.Name != "Budi Santoso" {
		t.Errorf("member = %q, want Budi Santoso", res.Member.Name)
	}
	if len(res.Transactions) != 2 {
		t.Errorf("got %d transactions, want 2 (other members' payments must not leak)", len(res.Transactions))
	}
	if len(res.Visits) != 2 {
		t.Errorf("got %d visits, want 2", len(res.Visits))
	}
	if visits.limit <= 0 {
		t.Error("visit history must be loaded with a positive limit")
	}
}

func TestGetMemberHistoryUnknownMember(t *testing.T) {
	deps := projections.GetMemberHistoryDeps{
		MemberStore:      &fakeHistoryMemberStore{},
		TransactionStore: &fakeHistoryTxnStore{},
		VisitStore:       &fakeHistoryVisitStore{},
	}

	_, err := projections.QueryGetMemberHistory(context.Background(), deps, 99)
	if !errors.Is(err, member.ErrNotFound) {
		t.Errorf("got %v, want member.ErrNotFound", err)
	}
}
