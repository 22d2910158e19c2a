package search_test

import (
	"errors"
	"testing"

	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/search"
)

// TestFromFields tests criterion selection in authority order.
func TestFromFields(t *testing.T) {
	tests := []struct {
		name         string
		memberNumber int64
		phone        string
		memberName   string
		want         string
	}{
		{"number wins over all", 5, "0812", "John", "number"},
		{"phone wins over name", 0, "0812", "John", "phone"},
		{"name alone", 0, "", "John", "name"},
		{"whitespace phone ignored", 0, "   ", "John", "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := search.FromFields(tt.memberNumber, tt.phone, tt.memberName)
			if err != nil {
				t.Fatalf("FromFields() error: %v", err)
			}
			var got string
			switch c.(type) {
			case search.ByNumber:
				got = "number"
			case search.ByPhone:
				got = "phone"
			case search.ByName:
				got = "name"
			}
			if got != tt.want {
				t.Errorf("FromFields() selected %s, want %s", got, tt.want)
			}
		})
	}
}

// TestFromFieldsEmpty tests the missing-criterion validation error.
func TestFromFieldsEmpty(t *testing.T) {
	_, err := search.FromFields(0, "", "  ")
	if !errors.Is(err, search.ErrNoCriterion) {
		t.Errorf("FromFields empty = %v, want ErrNoCriterion", err)
	}
}

// TestAmbiguousMatchErrorCarriesCandidates tests that the error is a
// complete disambiguation signal.
func TestAmbiguousMatchErrorCarriesCandidates(t *testing.T) {
	candidates := []member.Member{{ID: 1, Name: "John Smith"}, {ID: 2, Name: "John Doe"}}
	err := &search.AmbiguousMatchError{Criterion: `name "John"`, Candidates: candidates}
	if len(err.Candidates) != 2 {
		t.Fatalf("Candidates = %d, want 2", len(err.Candidates))
	}
	if err.Error() == "" {
		t.Error("Error() should describe the ambiguity")
	}
}
