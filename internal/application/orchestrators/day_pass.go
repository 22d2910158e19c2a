package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gymdesk/internal/domain/catalog"
	"gymdesk/internal/domain/visit"

	"github.com/google/uuid"
)

// ErrNoDayPassPackage is returned when the catalog has no active
// day-pass product to sell.
var ErrNoDayPassPackage = errors.New("no active day pass package is configured")

// DayPassPackageStore defines the package store interface needed for
// walk-in sales.
type DayPassPackageStore interface {
	GetDayPass(ctx context.Context) (catalog.Package, error)
}

// DayPassInput carries input for the walk-in day pass orchestrator.
type DayPassInput struct {
	Name            string
	Phone           string
	PaymentMethodID int64
	Amount          int64
}

// DayPassDeps holds dependencies for DayPass.
type DayPassDeps struct {
	PackageStore DayPassPackageStore
	Creator      MemberCreator
	VisitStore   CheckInVisitStore
}

// DayPassResult carries the created walk-in membership.
type DayPassResult struct {
	MemberNumber int64
	PackageName  string
	Message      string
}

// ExecuteDayPass sells a single-day pass to a walk-in: creates the
// same-day member record with its payment, then records the visit.
// PRE: Name is non-empty; an active day-pass package exists
// POST: Member, transaction, and visit persisted; valid until end of today
func ExecuteDayPass(ctx context.Context, input DayPassInput, deps DayPassDeps, now time.Time) (DayPassResult, error) {
	pkg, err := deps.PackageStore.GetDayPass(ctx)
	if err != nil {
		return DayPassResult{}, ErrNoDayPassPackage
	}

	number, err := ExecuteRegisterMember(ctx, RegisterMemberInput{
		Name:            input.Name,
		Phone:           input.Phone,
		Notes:           "Day Pass - Single visit",
		PackageID:       pkg.ID,
		PaymentMethodID: input.PaymentMethodID,
		Amount:          input.Amount,
		StartDate:       now,
	}, RegisterMemberDeps{
		PackageStore: dayPassPackageByID{pkg: pkg},
		Creator:      deps.Creator,
	}, now)
	if err != nil {
		return DayPassResult{}, err
	}

	v := visit.Visit{
		ID:          uuid.New().String(),
		MemberID:    number,
		Method:      visit.MethodDayPass,
		CheckInTime: now,
	}
	if err := v.Validate(); err != nil {
		return DayPassResult{}, err
	}
	if err := deps.VisitStore.Save(ctx, v); err != nil {
		return DayPassResult{}, err
	}

	slog.Info("checkin_event", "event", "day_pass_sold", "member_id", number, "name", input.Name)

	return DayPassResult{
		MemberNumber: number,
		PackageName:  pkg.Name,
		Message:      "Day pass issued — valid until end of today",
	}, nil
}

// dayPassPackageByID satisfies RenewPackageStore for the already-fetched
// day-pass package, so registration does not refetch it.
type dayPassPackageByID struct {
	pkg catalog.Package
}

func (s dayPassPackageByID) GetByID(_ context.Context, id int64) (catalog.Package, error) {
	if id != s.pkg.ID {
		return catalog.Package{}, ErrPackageNotFound
	}
	return s.pkg, nil
}
