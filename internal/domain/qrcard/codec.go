// Package qrcard defines the canonical QR payload printed on member ID
// cards and its encode/decode contract. The JSON field names are a wire
// contract with already-issued physical cards and must not change.
package qrcard

import (
	"encoding/json"
	"fmt"
	"time"

	"gymdesk/internal/domain/datemath"
	"gymdesk/internal/domain/member"
)

// Payload is the JSON document embedded in a member's QR card.
// Timestamp records encode time in milliseconds and is informational
// only — there is no freshness window on decode. MembershipType and
// EndDate are snapshots frozen at encode time; callers must re-resolve
// ID against the live member store before trusting them.
type Payload struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	MembershipType string `json:"membershipType"`
	EndDate        string `json:"endDate"`
	Phone          string `json:"phone"`
	Timestamp      int64  `json:"timestamp"`
}

// DecodeError describes why a scanned payload was rejected.
type DecodeError struct {
	Field  string // offending field, empty for malformed JSON
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid QR payload: %s", e.Reason)
	}
	return fmt.Sprintf("invalid QR payload: field %q %s", e.Field, e.Reason)
}

// Encode projects a member snapshot into a QR payload.
// PRE: m is a valid member with an assigned ID
// POST: Returns the payload with Timestamp set to now
// INVARIANT: Pure projection; m is not mutated
func Encode(m member.Member, now time.Time) Payload {
	return Payload{
		ID:             m.ID,
		Name:           m.Name,
		MembershipType: m.MembershipType,
		EndDate:        datemath.FormatDate(m.EndDate),
		Phone:          m.Phone,
		Timestamp:      now.UnixMilli(),
	}
}

// EncodeString returns the JSON text embedded in the QR image.
func EncodeString(m member.Member, now time.Time) (string, error) {
	data, err := json.Marshal(Encode(m, now))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses raw scanned text into a Payload.
// Only structure is verified: the text must be valid JSON and carry a
// positive id and non-empty name. Everything else decodes successfully
// but is an unverified claim until re-resolved against the member store.
// PRE: raw is the scanned or manually entered text
// POST: Returns the payload, or a *DecodeError
func Decode(raw string) (Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Payload{}, &DecodeError{Reason: "not valid JSON"}
	}
	if p.ID <= 0 {
		return Payload{}, &DecodeError{Field: "id", Reason: "must be a positive member number"}
	}
	if p.Name == "" {
		return Payload{}, &DecodeError{Field: "name", Reason: "must be present"}
	}
	return p, nil
}
