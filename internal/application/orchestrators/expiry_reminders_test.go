package orchestrators_test

import (
	"context"
	"strings"
	"testing"

	"gymdesk/internal/adapters/email"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/domain/member"
)

type recordingSender struct {
	sent []email.SendRequest
}

func (s *recordingSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	s.sent = append(s.sent, req)
	return email.SendResult{MessageID: "test"}, nil
}

func (s *recordingSender) SendBatch(_ context.Context, reqs []email.SendRequest) ([]email.SendResult, error) {
	s.sent = append(s.sent, reqs...)
	results := make([]email.SendResult, len(reqs))
	return results, nil
}

func TestExpiryRemindersTargetsExpiringSoonOnly(t *testing.T) {
	now := mustDate("2026-03-10")
	sender := &recordingSender{}
	deps := orchestrators.ExpiryRemindersDeps{
		MemberStore: &fakeDirectory{members: []member.Member{
			{ID: 1, Name: "Soon", Email: "soon@example.com", MembershipType: "Monthly", StartDate: mustDate("2026-01-01"), EndDate: mustDate("2026-03-13")},
			{ID: 2, Name: "Soon No Email", MembershipType: "Monthly", StartDate: mustDate("2026-01-01"), EndDate: mustDate("2026-03-12")},
			{ID: 3, Name: "Fine", Email: "fine@example.com", StartDate: mustDate("2026-01-01"), EndDate: mustDate("2026-06-01")},
			{ID: 4, Name: "Gone", Email: "gone@example.com", StartDate: mustDate("2025-01-01"), EndDate: mustDate("2025-06-01")},
		}},
		Sender: sender,
	}

	res, err := orchestrators.ExecuteExpiryReminders(context.Background(), orchestrators.ExpiryRemindersInput{
		From: "GymDesk <noreply@gymdesk.example>",
	}, deps, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Considered != 2 {
		t.Errorf("Considered = %d, want 2", res.Considered)
	}
	if res.Sent != 1 {
		t.Errorf("Sent = %d, want 1", res.Sent)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sender got %d requests, want 1", len(sender.sent))
	}
	req := sender.sent[0]
	if req.To[0] != "soon@example.com" {
		t.Errorf("sent to %v, want soon@example.com", req.To)
	}
	if !strings.Contains(req.Subject, "3 days") {
		t.Errorf("subject %q should mention days remaining", req.Subject)
	}
}
