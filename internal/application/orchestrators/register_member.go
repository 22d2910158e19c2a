package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"gymdesk/internal/domain/datemath"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/transaction"

	"github.com/google/uuid"
)

// MemberCreator persists a new member together with the purchase
// transaction as a single atomic unit, returning the assigned member
// number.
type MemberCreator interface {
	CreateWithTransaction(ctx context.Context, m member.Member, txn transaction.Transaction) (int64, error)
}

// RegisterMemberInput carries input for the registration orchestrator.
type RegisterMemberInput struct {
	Name            string
	Phone           string
	Email           string
	Notes           string
	PackageID       int64
	PaymentMethodID int64
	Amount          int64
	StartDate       time.Time
}

// RegisterMemberDeps holds dependencies for RegisterMember.
type RegisterMemberDeps struct {
	PackageStore RenewPackageStore
	Creator      MemberCreator
}

// ExecuteRegisterMember creates a member with dates derived from the
// chosen package and records the purchase. A day-pass package yields a
// same-day membership that never extends past today.
// PRE: input names a valid package; StartDate defaults to now if zero
// POST: Member and transaction persisted together; member number returned
// INVARIANT: Day pass -> EndDate equals StartDate
func ExecuteRegisterMember(ctx context.Context, input RegisterMemberInput, deps RegisterMemberDeps, now time.Time) (int64, error) {
	pkg, err := deps.PackageStore.GetByID(ctx, input.PackageID)
	if err != nil {
		return 0, ErrPackageNotFound
	}
	if !pkg.Active {
		return 0, ErrPackageUnavailable
	}
	if input.Amount < 0 {
		return 0, transaction.ErrNegativeAmount
	}

	start := datemath.Truncate(input.StartDate)
	if input.StartDate.IsZero() {
		start = datemath.Truncate(now)
	}

	end := start
	if !pkg.IsDayPass() {
		end = datemath.AddMonths(start, pkg.DurationMonths)
	}

	m := member.Member{
		Name:           input.Name,
		Phone:          input.Phone,
		Email:          input.Email,
		MembershipType: pkg.Name, // label copied at purchase, not a live reference
		StartDate:      start,
		EndDate:        end,
		Notes:          input.Notes,
		CreatedAt:      now,
	}
	if err := m.Validate(); err != nil {
		return 0, err
	}

	txn := transaction.Transaction{
		ID:              uuid.New().String(),
		PackageID:       pkg.ID,
		PaymentMethodID: input.PaymentMethodID,
		Amount:          input.Amount,
		Notes:           input.Notes,
		CreatedAt:       now,
	}

	number, err := deps.Creator.CreateWithTransaction(ctx, m, txn)
	if err != nil {
		return 0, err
	}

	slog.Info("member_event",
		"event", "member_registered",
		"member_id", number,
		"name", m.Name,
		"package", pkg.Name,
		"end_date", end.Format("2006-01-02"),
	)

	return number, nil
}
