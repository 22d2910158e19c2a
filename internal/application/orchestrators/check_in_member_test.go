package orchestrators_test

import (
	"context"
	"testing"

	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/search"
	"gymdesk/internal/domain/visit"
)

func TestCheckInRecordsVisitOnlyWhenAdmitted(t *testing.T) {
	now := mustDate("2026-03-10")
	directory := &fakeDirectory{members: []member.Member{
		{ID: 1, Name: "Active", StartDate: mustDate("2026-01-01"), EndDate: mustDate("2026-06-01")},
		{ID: 2, Name: "Expired", StartDate: mustDate("2025-01-01"), EndDate: mustDate("2025-06-01")},
		{ID: 3, Name: "Closing", StartDate: mustDate("2026-01-01"), EndDate: mustDate("2026-03-13")},
	}}

	tests := []struct {
		name       string
		number     int64
		wantEnter  bool
		wantStatus string
		wantVisits int
	}{
		{"active member admitted", 1, true, member.StatusActive, 1},
		{"expired member denied", 2, false, member.StatusExpired, 0},
		{"expiring soon admitted with warning", 3, true, member.StatusExpiringSoon, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visits := &fakeVisitStore{}
			deps := orchestrators.CheckInDeps{Directory: directory, VisitStore: visits}

			res, err := orchestrators.ExecuteCheckIn(context.Background(), search.ByNumber{Number: tt.number}, visit.MethodManual, deps, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Decision.CanEnter != tt.wantEnter {
				t.Errorf("CanEnter = %v, want %v", res.Decision.CanEnter, tt.wantEnter)
			}
			if res.Decision.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", res.Decision.Status, tt.wantStatus)
			}
			if len(visits.saved) != tt.wantVisits {
				t.Errorf("recorded %d visits, want %d", len(visits.saved), tt.wantVisits)
			}
			if tt.wantVisits == 1 {
				v := visits.saved[0]
				if v.MemberID != tt.number || v.Method != visit.MethodManual || !v.CheckInTime.Equal(now) {
					t.Errorf("saved visit %+v not as expected", v)
				}
			}
		})
	}
}

func TestCheckInExpiringSoonWarning(t *testing.T) {
	now := mustDate("2026-03-10")
	directory := &fakeDirectory{members: []member.Member{
		{ID: 3, Name: "Closing", StartDate: mustDate("2026-01-01"), EndDate: mustDate("2026-03-13")},
	}}
	deps := orchestrators.CheckInDeps{Directory: directory, VisitStore: &fakeVisitStore{}}

	res, err := orchestrators.ExecuteCheckIn(context.Background(), search.ByNumber{Number: 3}, visit.MethodQR, deps, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Decision.Warning == "" {
		t.Error("expected a warning for expiring-soon member")
	}
	if res.Decision.DaysRemaining != 3 {
		t.Errorf("DaysRemaining = %d, want 3", res.Decision.DaysRemaining)
	}
}

func TestCheckInAmbiguousLeavesNoVisit(t *testing.T) {
	now := mustDate("2026-03-10")
	directory := &fakeDirectory{members: []member.Member{
		{ID: 1, Name: "A", Phone: "0812", StartDate: mustDate("2026-01-01"), EndDate: mustDate("2026-06-01")},
		{ID: 2, Name: "B", Phone: "0812", StartDate: mustDate("2026-01-01"), EndDate: mustDate("2026-06-01")},
	}}
	visits := &fakeVisitStore{}
	deps := orchestrators.CheckInDeps{Directory: directory, VisitStore: visits}

	_, err := orchestrators.ExecuteCheckIn(context.Background(), search.ByPhone{Phone: "0812"}, visit.MethodManual, deps, now)
	if err == nil {
		t.Fatal("expected error for ambiguous phone")
	}
	if len(visits.saved) != 0 {
		t.Errorf("ambiguous check-in recorded %d visits, want 0", len(visits.saved))
	}
}
