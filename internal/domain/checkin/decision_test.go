package checkin_test

import (
	"strings"
	"testing"
	"time"

	"gymdesk/internal/domain/checkin"
	"gymdesk/internal/domain/member"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testMember(start, end string) member.Member {
	return member.Member{
		ID:             42,
		Name:           "Jane Doe",
		MembershipType: "Monthly",
		StartDate:      date(start),
		EndDate:        date(end),
	}
}

// TestDecide tests the admit/deny state machine over lifecycle states.
func TestDecide(t *testing.T) {
	tests := []struct {
		name        string
		member      member.Member
		now         string
		wantEnter   bool
		wantStatus  string
		wantWarning bool
	}{
		{"active admits", testMember("2023-12-01", "2024-01-10"), "2023-12-15", true, member.StatusActive, false},
		{"expiring soon admits with warning", testMember("2023-12-01", "2024-01-10"), "2024-01-05", true, member.StatusExpiringSoon, true},
		{"expired denies", testMember("2023-12-01", "2024-01-10"), "2024-01-11", false, member.StatusExpired, false},
		{"inactive denies", testMember("2024-02-01", "2024-03-01"), "2024-01-15", false, member.StatusInactive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := checkin.Decide(tt.member, date(tt.now))
			if d.CanEnter != tt.wantEnter {
				t.Errorf("CanEnter = %v, want %v", d.CanEnter, tt.wantEnter)
			}
			if d.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", d.Status, tt.wantStatus)
			}
			if (d.Warning != "") != tt.wantWarning {
				t.Errorf("Warning = %q, wantWarning %v", d.Warning, tt.wantWarning)
			}
			if d.Message == "" {
				t.Error("Message should never be empty")
			}
		})
	}
}

// TestDecideExpiredNamesReason tests that a denial names the status.
func TestDecideExpiredNamesReason(t *testing.T) {
	d := checkin.Decide(testMember("2023-12-01", "2024-01-10"), date("2024-01-11"))
	if !strings.Contains(strings.ToLower(d.Message), "expired") {
		t.Errorf("deny message %q should name the expired status", d.Message)
	}
}

// TestDecideWarningCarriesDays tests the non-blocking warning payload.
func TestDecideWarningCarriesDays(t *testing.T) {
	d := checkin.Decide(testMember("2023-12-01", "2024-01-10"), date("2024-01-07"))
	if d.DaysRemaining != 3 {
		t.Errorf("DaysRemaining = %d, want 3", d.DaysRemaining)
	}
	if !strings.Contains(d.Warning, "3 days") {
		t.Errorf("Warning = %q, should mention 3 days", d.Warning)
	}
}

// TestDecideIsStateless verifies repeated calls yield identical
// decisions — same-day re-entry is not this component's concern.
func TestDecideIsStateless(t *testing.T) {
	m := testMember("2023-12-01", "2024-01-10")
	now := date("2023-12-15")
	first := checkin.Decide(m, now)
	second := checkin.Decide(m, now)
	if first != second {
		t.Errorf("Decide is not stateless: %+v vs %+v", first, second)
	}
}
