package account_test

import (
	"testing"
	"time"

	"gymdesk/internal/domain/account"
)

// TestAccountValidation tests validation of Account.
func TestAccountValidation(t *testing.T) {
	tests := []struct {
		name    string
		acct    account.Account
		wantErr bool
	}{
		{"valid admin", account.Account{Email: "admin@gym.test", Role: account.RoleAdmin}, false},
		{"valid staff", account.Account{Email: "desk@gym.test", Role: account.RoleStaff}, false},
		{"empty email", account.Account{Email: " ", Role: account.RoleAdmin}, true},
		{"invalid email", account.Account{Email: "nope", Role: account.RoleAdmin}, true},
		{"invalid role", account.Account{Email: "a@b.c", Role: "owner"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.acct.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Account.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestPasswordRoundTrip tests hashing and verification.
func TestPasswordRoundTrip(t *testing.T) {
	a := account.Account{Email: "admin@gym.test", Role: account.RoleAdmin}
	if err := a.SetPassword("short"); err == nil {
		t.Error("SetPassword should reject short passwords")
	}
	if err := a.SetPassword("a long enough password"); err != nil {
		t.Fatalf("SetPassword() error: %v", err)
	}
	if err := a.CheckPassword("a long enough password"); err != nil {
		t.Errorf("CheckPassword correct: %v", err)
	}
	if err := a.CheckPassword("wrong password here"); err == nil {
		t.Error("CheckPassword should reject wrong password")
	}
}

// TestLockout tests failed-login lockout behavior.
func TestLockout(t *testing.T) {
	a := account.Account{Email: "admin@gym.test", Role: account.RoleAdmin}
	for i := 0; i < 4; i++ {
		a.RecordFailedLogin()
	}
	if a.IsLocked() {
		t.Error("account should not lock before 5 failures")
	}
	a.RecordFailedLogin()
	if !a.IsLocked() {
		t.Error("account should lock after 5 failures")
	}
	a.ResetFailedLogins()
	if a.IsLocked() || a.FailedLogins != 0 {
		t.Error("reset should clear lock and counter")
	}
	if !a.LockedUntil.Equal(time.Time{}) {
		t.Error("reset should zero LockedUntil")
	}
}
