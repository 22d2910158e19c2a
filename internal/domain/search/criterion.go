// Package search defines the identifying criteria a member lookup can
// be made with, and the ambiguity contract for resolving them. A lookup
// either matches exactly one member, none, or several — and the engine
// never silently picks among several.
package search

import (
	"errors"
	"fmt"
	"strings"

	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/qrcard"
)

// Domain errors
var (
	// ErrNoCriterion is returned when a lookup request carries no
	// identifying field at all.
	ErrNoCriterion = errors.New("search requires a member number, phone, or name")

	// ErrNoMatch is returned when no member matches the criterion.
	ErrNoMatch = errors.New("no member matches the search")
)

// Criterion is a tagged union over the ways a member can be identified.
// Exactly one variant is used per lookup; dispatch is explicit, never
// by presence-of-key sniffing.
type Criterion interface {
	isCriterion()
	// Describe renders the criterion for logs and error messages.
	Describe() string
}

// ByNumber identifies a member by their unique member number.
// Always resolves to one member or none, never an ambiguous set.
type ByNumber struct {
	Number int64
}

// ByPhone identifies a member by exact phone match. Phones are
// free-form and shared family phones do occur, so this can be ambiguous.
type ByPhone struct {
	Phone string
}

// ByName identifies a member by case-insensitive substring match.
// Frequently ambiguous.
type ByName struct {
	Name string
}

// ByQR identifies a member via a decoded QR card claim. The authoritative
// id is tried first; phone and name are fallbacks for damaged records.
type ByQR struct {
	Payload qrcard.Payload
}

func (ByNumber) isCriterion() {}
func (ByPhone) isCriterion()  {}
func (ByName) isCriterion()   {}
func (ByQR) isCriterion()     {}

func (c ByNumber) Describe() string { return fmt.Sprintf("member number %d", c.Number) }
func (c ByPhone) Describe() string  { return fmt.Sprintf("phone %q", c.Phone) }
func (c ByName) Describe() string   { return fmt.Sprintf("name %q", c.Name) }
func (c ByQR) Describe() string     { return fmt.Sprintf("QR card for member %d", c.Payload.ID) }

// AmbiguousMatchError carries the full candidate set when a criterion
// matches more than one member. It is a disambiguation signal, not a
// failure: the caller presents the candidates to a human and retries
// with the chosen member number.
type AmbiguousMatchError struct {
	Criterion  string
	Candidates []member.Member
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("%s matches %d members", e.Criterion, len(e.Candidates))
}

// FromFields builds a Criterion from the optional identifying fields of
// a lookup request, in authority order: member number, then phone,
// then name.
// PRE: at most one field is expected, but extras are tolerated
// POST: Returns the highest-authority criterion present, or ErrNoCriterion
func FromFields(memberNumber int64, phone, name string) (Criterion, error) {
	if memberNumber > 0 {
		return ByNumber{Number: memberNumber}, nil
	}
	if strings.TrimSpace(phone) != "" {
		return ByPhone{Phone: strings.TrimSpace(phone)}, nil
	}
	if strings.TrimSpace(name) != "" {
		return ByName{Name: strings.TrimSpace(name)}, nil
	}
	return nil, ErrNoCriterion
}
