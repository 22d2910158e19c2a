package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gymdesk/internal/adapters/email"
	"gymdesk/internal/domain/member"
)

// ReminderMemberStore defines the member store interface needed for
// expiry reminders.
type ReminderMemberStore interface {
	ListAll(ctx context.Context) ([]member.Member, error)
}

// ExpiryRemindersInput carries sender configuration for the reminder run.
type ExpiryRemindersInput struct {
	From    string
	ReplyTo string
}

// ExpiryRemindersDeps holds dependencies for ExpiryReminders.
type ExpiryRemindersDeps struct {
	MemberStore ReminderMemberStore
	Sender      email.Sender
}

// ExpiryRemindersResult summarizes a reminder run.
type ExpiryRemindersResult struct {
	Considered int // members currently expiring soon
	Sent       int // reminders actually dispatched (members with email)
}

// ExecuteExpiryReminders emails every member whose membership is
// expiring soon. Members without an email address are counted but
// skipped.
// PRE: Sender is configured
// POST: One reminder per expiring member with an email; nothing stored
func ExecuteExpiryReminders(ctx context.Context, input ExpiryRemindersInput, deps ExpiryRemindersDeps, now time.Time) (ExpiryRemindersResult, error) {
	members, err := deps.MemberStore.ListAll(ctx)
	if err != nil {
		return ExpiryRemindersResult{}, err
	}

	var reqs []email.SendRequest
	result := ExpiryRemindersResult{}
	for _, m := range members {
		if m.Status(now) != member.StatusExpiringSoon {
			continue
		}
		result.Considered++
		if m.Email == "" {
			continue
		}
		days := m.DaysRemaining(now)
		reqs = append(reqs, email.SendRequest{
			To:      []string{m.Email},
			From:    input.From,
			ReplyTo: input.ReplyTo,
			Subject: fmt.Sprintf("Your %s membership expires in %d days", m.MembershipType, days),
			HTML: fmt.Sprintf(
				"<p>Hi %s,</p><p>Your <strong>%s</strong> membership ends on %s — that's %d days away. Renew at the front desk to keep your remaining days.</p>",
				m.Name, m.MembershipType, m.EndDate.Format("2006-01-02"), days,
			),
		})
	}

	if len(reqs) > 0 {
		if _, err := deps.Sender.SendBatch(ctx, reqs); err != nil {
			return result, err
		}
		result.Sent = len(reqs)
	}

	slog.Info("reminder_event", "event", "expiry_reminders_sent", "considered", result.Considered, "sent", result.Sent)
	return result, nil
}
