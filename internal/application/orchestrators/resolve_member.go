package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/search"
)

// maxNameMatches caps the candidate set returned for a name search.
const maxNameMatches = 10

// MemberDirectory defines the member store interface needed to resolve
// a search criterion.
type MemberDirectory interface {
	GetByNumber(ctx context.Context, number int64) (member.Member, error)
	FindByPhone(ctx context.Context, phone string) ([]member.Member, error)
	SearchByName(ctx context.Context, name string, limit int) ([]member.Member, error)
}

// ResolveMemberDeps holds dependencies for ResolveMember.
type ResolveMemberDeps struct {
	Directory MemberDirectory
}

// ExecuteResolveMember resolves an identifying criterion to exactly one
// member. More than one match returns the full candidate set as an
// AmbiguousMatchError — the caller shows it to a human and retries with
// the chosen member number; the engine never auto-selects.
// PRE: criterion is non-nil
// POST: Returns one member, search.ErrNoMatch, or *AmbiguousMatchError
// INVARIANT: A member-number criterion is never ambiguous
func ExecuteResolveMember(ctx context.Context, criterion search.Criterion, deps ResolveMemberDeps) (member.Member, error) {
	switch c := criterion.(type) {
	case search.ByNumber:
		m, err := deps.Directory.GetByNumber(ctx, c.Number)
		if errors.Is(err, member.ErrNotFound) {
			return member.Member{}, search.ErrNoMatch
		}
		if err != nil {
			return member.Member{}, err
		}
		return m, nil

	case search.ByPhone:
		matches, err := deps.Directory.FindByPhone(ctx, c.Phone)
		if err != nil {
			return member.Member{}, err
		}
		return pickSingle(c, matches)

	case search.ByName:
		matches, err := deps.Directory.SearchByName(ctx, c.Name, maxNameMatches)
		if err != nil {
			return member.Member{}, err
		}
		return pickSingle(c, matches)

	case search.ByQR:
		// The id on the card is authoritative; phone and name are
		// fallbacks for cards predating the current numbering.
		m, err := deps.Directory.GetByNumber(ctx, c.Payload.ID)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, member.ErrNotFound) {
			return member.Member{}, err
		}
		slog.Info("search_event", "event", "qr_id_miss", "member_id", c.Payload.ID)
		if c.Payload.Phone != "" {
			matches, err := deps.Directory.FindByPhone(ctx, c.Payload.Phone)
			if err != nil {
				return member.Member{}, err
			}
			if len(matches) > 0 {
				return pickSingle(c, matches)
			}
		}
		if c.Payload.Name != "" {
			matches, err := deps.Directory.SearchByName(ctx, c.Payload.Name, maxNameMatches)
			if err != nil {
				return member.Member{}, err
			}
			return pickSingle(c, matches)
		}
		return member.Member{}, search.ErrNoMatch

	default:
		return member.Member{}, search.ErrNoCriterion
	}
}

// pickSingle enforces the at-most-one-silent-match guarantee.
func pickSingle(c search.Criterion, matches []member.Member) (member.Member, error) {
	switch len(matches) {
	case 0:
		return member.Member{}, search.ErrNoMatch
	case 1:
		return matches[0], nil
	default:
		return member.Member{}, &search.AmbiguousMatchError{
			Criterion:  c.Describe(),
			Candidates: matches,
		}
	}
}
