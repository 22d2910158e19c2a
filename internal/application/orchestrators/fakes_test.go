package orchestrators_test

import (
	"context"
	"errors"
	"time"

	"gymdesk/internal/domain/catalog"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/transaction"
	"gymdesk/internal/domain/visit"
)

var errFakeNotFound = errors.New("not found")

// fakeDirectory is an in-memory MemberDirectory. A non-nil err is
// returned from every lookup to simulate a store failure.
type fakeDirectory struct {
	members []member.Member
	err     error
}

func (d *fakeDirectory) ListAll(_ context.Context) ([]member.Member, error) {
	return d.members, nil
}

func (d *fakeDirectory) GetByNumber(_ context.Context, number int64) (member.Member, error) {
	if d.err != nil {
		return member.Member{}, d.err
	}
	for _, m := range d.members {
		if m.ID == number {
			return m, nil
		}
	}
	return member.Member{}, member.ErrNotFound
}

func (d *fakeDirectory) FindByPhone(_ context.Context, phone string) ([]member.Member, error) {
	var out []member.Member
	for _, m := range d.members {
		if m.Phone == phone {
			out = append(out, m)
		}
	}
	return out, nil
}

func (d *fakeDirectory) SearchByName(_ context.Context, name string, limit int) ([]member.Member, error) {
	var out []member.Member
	for _, m := range d.members {
		if len(out) == limit {
			break
		}
		if containsFold(m.Name, name) {
			out = append(out, m)
		}
	}
	return out, nil
}

func containsFold(haystack, needle string) bool {
	h, n := []rune(haystack), []rune(needle)
	for i := 0; i+len(n) <= len(h); i++ {
		ok := true
		for j := range n {
			a, b := h[i+j], n[j]
			if 'A' <= a && a <= 'Z' {
				a += 'a' - 'A'
			}
			if 'A' <= b && b <= 'Z' {
				b += 'a' - 'A'
			}
			if a != b {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// fakeVisitStore records saved visits.
type fakeVisitStore struct {
	saved []visit.Visit
	err   error
}

func (s *fakeVisitStore) Save(_ context.Context, v visit.Visit) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, v)
	return nil
}

// fakePackageStore serves packages by ID and the day pass.
type fakePackageStore struct {
	packages []catalog.Package
}

func (s *fakePackageStore) GetByID(_ context.Context, id int64) (catalog.Package, error) {
	for _, p := range s.packages {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Package{}, errFakeNotFound
}

func (s *fakePackageStore) GetDayPass(_ context.Context) (catalog.Package, error) {
	for _, p := range s.packages {
		if p.IsDayPass() && p.Active {
			return p, nil
		}
	}
	return catalog.Package{}, errFakeNotFound
}

// fakeCommitter captures the renewal commit for inspection.
type fakeCommitter struct {
	committed bool
	memberID  int64
	newStart  time.Time
	newEnd    time.Time
	label     string
	txn       transaction.Transaction
	err       error
}

func (c *fakeCommitter) CommitRenewal(_ context.Context, memberID int64, newStart, newEnd time.Time, membershipType string, txn transaction.Transaction) error {
	if c.err != nil {
		return c.err
	}
	c.committed = true
	c.memberID = memberID
	c.newStart = newStart
	c.newEnd = newEnd
	c.label = membershipType
	c.txn = txn
	return nil
}

// fakeCreator assigns sequential member numbers.
type fakeCreator struct {
	next    int64
	members []member.Member
	txns    []transaction.Transaction
}

func (c *fakeCreator) CreateWithTransaction(_ context.Context, m member.Member, txn transaction.Transaction) (int64, error) {
	c.next++
	m.ID = c.next
	c.members = append(c.members, m)
	c.txns = append(c.txns, txn)
	return c.next, nil
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
