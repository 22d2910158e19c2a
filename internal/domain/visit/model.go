package visit

import (
	"errors"
	"time"
)

// Check-in method constants
const (
	MethodManual  = "manual"
	MethodQR      = "qr"
	MethodDayPass = "daypass"
)

// Domain errors
var (
	ErrNoMember      = errors.New("visit must be associated with a member")
	ErrNoCheckInTime = errors.New("check-in time must be set")
	ErrInvalidMethod = errors.New("method must be 'manual', 'qr', or 'daypass'")
)

// Visit is an append-only record of an admitted check-in. Re-entry on
// the same day produces a second record; deduplication is a reporting
// concern, not an admission one.
type Visit struct {
	ID          string
	MemberID    int64
	Method      string
	CheckInTime time.Time
}

// Validate checks if the Visit has valid data.
// PRE: Visit struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (v *Visit) Validate() error {
	if v.MemberID <= 0 {
		return ErrNoMember
	}
	if v.CheckInTime.IsZero() {
		return ErrNoCheckInTime
	}
	if v.Method != MethodManual && v.Method != MethodQR && v.Method != MethodDayPass {
		return ErrInvalidMethod
	}
	return nil
}
