package catalog_test

import (
	"testing"

	"gymdesk/internal/domain/catalog"
)

// TestPackageValidation tests validation of Package.
func TestPackageValidation(t *testing.T) {
	tests := []struct {
		name    string
		pkg     catalog.Package
		wantErr bool
	}{
		{"valid monthly", catalog.Package{Name: "Monthly", DurationMonths: 1, Price: 300000, Active: true}, false},
		{"valid day pass", catalog.Package{Name: "Day Pass", DurationMonths: 0, Price: 25000, Active: true}, false},
		{"free package allowed", catalog.Package{Name: "Promo", DurationMonths: 1, Price: 0, Active: true}, false},
		{"empty name", catalog.Package{Name: " ", DurationMonths: 1, Price: 100}, true},
		{"negative duration", catalog.Package{Name: "Broken", DurationMonths: -1, Price: 100}, true},
		{"negative price", catalog.Package{Name: "Broken", DurationMonths: 1, Price: -5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pkg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Package.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestIsDayPass tests the day-pass marker.
func TestIsDayPass(t *testing.T) {
	if !(&catalog.Package{DurationMonths: 0}).IsDayPass() {
		t.Error("zero duration should be a day pass")
	}
	if (&catalog.Package{DurationMonths: 1}).IsDayPass() {
		t.Error("one month is not a day pass")
	}
}

// TestDeactivate tests soft-deletion.
func TestDeactivate(t *testing.T) {
	p := catalog.Package{Name: "Monthly", DurationMonths: 1, Active: true}
	if err := p.Deactivate(); err != nil {
		t.Fatalf("Deactivate() error: %v", err)
	}
	if p.Active {
		t.Error("package should be inactive after Deactivate")
	}
	if err := p.Deactivate(); err == nil {
		t.Error("Deactivate() should fail on already inactive package")
	}
}
