package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gymdesk/internal/domain/catalog"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/renewal"
	"gymdesk/internal/domain/transaction"

	"github.com/google/uuid"
)

// Domain-facing orchestration errors
var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrPackageNotFound    = errors.New("package not found")
	ErrPackageUnavailable = errors.New("package is no longer available")
)

// RenewMemberStore defines the member store interface needed for renewal.
type RenewMemberStore interface {
	GetByNumber(ctx context.Context, number int64) (member.Member, error)
}

// RenewPackageStore defines the package store interface needed for renewal.
type RenewPackageStore interface {
	GetByID(ctx context.Context, id int64) (catalog.Package, error)
}

// RenewalCommitter persists the new membership dates together with the
// payment transaction as a single atomic unit — either both are written
// or neither is.
type RenewalCommitter interface {
	CommitRenewal(ctx context.Context, memberID int64, newStart, newEnd time.Time, membershipType string, txn transaction.Transaction) error
}

// RenewMembershipInput carries input for the renewal orchestrator.
type RenewMembershipInput struct {
	MemberNumber    int64
	PackageID       int64
	PaymentMethodID int64
	Amount          int64
	Notes           string
}

// RenewMembershipDeps holds dependencies for RenewMembership.
type RenewMembershipDeps struct {
	MemberStore  RenewMemberStore
	PackageStore RenewPackageStore
	Committer    RenewalCommitter
}

// RenewMembershipResult carries the committed renewal.
type RenewMembershipResult struct {
	Preview       renewal.Preview
	TransactionID string
}

// ExecutePreviewRenewal computes the renewal projection without
// committing anything.
// PRE: memberNumber and packageID identify existing records
// POST: Returns the preview; no state is written
func ExecutePreviewRenewal(ctx context.Context, memberNumber, packageID int64, deps RenewMembershipDeps, now time.Time) (renewal.Preview, error) {
	m, err := deps.MemberStore.GetByNumber(ctx, memberNumber)
	if err != nil {
		return renewal.Preview{}, ErrMemberNotFound
	}
	pkg, err := deps.PackageStore.GetByID(ctx, packageID)
	if err != nil {
		return renewal.Preview{}, ErrPackageNotFound
	}
	if !pkg.Active {
		return renewal.Preview{}, ErrPackageUnavailable
	}
	return renewal.Plan(pkg.Name, m.EndDate, now, pkg.DurationMonths)
}

// ExecuteRenewMembership plans a renewal and commits the new date range
// plus the payment record atomically.
// PRE: input identifies an existing member and an active package
// POST: Member dates and transaction persisted together, or neither
// INVARIANT: The orchestrator itself performs no partial writes
func ExecuteRenewMembership(ctx context.Context, input RenewMembershipInput, deps RenewMembershipDeps, now time.Time) (RenewMembershipResult, error) {
	if input.Amount < 0 {
		return RenewMembershipResult{}, transaction.ErrNegativeAmount
	}

	m, err := deps.MemberStore.GetByNumber(ctx, input.MemberNumber)
	if err != nil {
		return RenewMembershipResult{}, ErrMemberNotFound
	}
	pkg, err := deps.PackageStore.GetByID(ctx, input.PackageID)
	if err != nil {
		return RenewMembershipResult{}, ErrPackageNotFound
	}
	if !pkg.Active {
		return RenewMembershipResult{}, ErrPackageUnavailable
	}

	preview, err := renewal.Plan(pkg.Name, m.EndDate, now, pkg.DurationMonths)
	if err != nil {
		return RenewMembershipResult{}, err
	}

	txn := transaction.Transaction{
		ID:              uuid.New().String(),
		MemberID:        m.ID,
		PackageID:       pkg.ID,
		PaymentMethodID: input.PaymentMethodID,
		Amount:          input.Amount,
		Notes:           input.Notes,
		CreatedAt:       now,
	}
	if err := txn.Validate(); err != nil {
		return RenewMembershipResult{}, err
	}

	if err := deps.Committer.CommitRenewal(ctx, m.ID, preview.NewStartDate, preview.NewEndDate, pkg.Name, txn); err != nil {
		return RenewMembershipResult{}, err
	}

	slog.Info("renewal_event",
		"event", "membership_renewed",
		"member_id", m.ID,
		"package", pkg.Name,
		"new_end_date", preview.NewEndDate.Format("2006-01-02"),
		"extension_days", preview.ExtensionDays,
		"was_expired", preview.IsExpired,
	)

	return RenewMembershipResult{Preview: preview, TransactionID: txn.ID}, nil
}
