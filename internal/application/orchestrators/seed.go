package orchestrators

import (
	"context"
	"log/slog"

	"gymdesk/internal/domain/account"
	"gymdesk/internal/domain/catalog"
	"gymdesk/internal/domain/paymentmethod"
)

// SeedPackageStore defines the package store interface needed for seeding.
type SeedPackageStore interface {
	List(ctx context.Context, includeInactive bool) ([]catalog.Package, error)
	Save(ctx context.Context, p catalog.Package) error
}

// SeedPaymentMethodStore defines the payment method store interface
// needed for seeding.
type SeedPaymentMethodStore interface {
	List(ctx context.Context) ([]paymentmethod.PaymentMethod, error)
	Save(ctx context.Context, p paymentmethod.PaymentMethod) error
}

// ExecuteSeedAdmin creates the initial admin account when no accounts
// exist yet. Idempotent across restarts.
// PRE: email and password are valid credentials
// POST: Exactly one admin exists after first run; later runs are no-ops
func ExecuteSeedAdmin(ctx context.Context, deps CreateAccountDeps, email, password string) error {
	n, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	if _, err := ExecuteCreateAccount(ctx, CreateAccountInput{
		Email:    email,
		Password: password,
		Role:     account.RoleAdmin,
	}, deps); err != nil {
		return err
	}

	slog.Info("seed_event", "event", "admin_seeded", "email", email)
	return nil
}

// SeedCatalogDeps holds dependencies for SeedCatalog.
type SeedCatalogDeps struct {
	PackageStore       SeedPackageStore
	PaymentMethodStore SeedPaymentMethodStore
}

// ExecuteSeedCatalog creates the default package catalog and payment
// methods when the tables are empty. Idempotent across restarts.
// PRE: stores are reachable
// POST: A day pass plus standard terms exist; payment methods exist
func ExecuteSeedCatalog(ctx context.Context, deps SeedCatalogDeps) error {
	pkgs, err := deps.PackageStore.List(ctx, true)
	if err != nil {
		return err
	}
	if len(pkgs) == 0 {
		defaults := []catalog.Package{
			{Name: "Day Pass", DurationMonths: 0, Price: 25000, Active: true},
			{Name: "Monthly", DurationMonths: 1, Price: 300000, Active: true},
			{Name: "3 Months", DurationMonths: 3, Price: 800000, Active: true},
			{Name: "6 Months", DurationMonths: 6, Price: 1500000, Active: true},
			{Name: "Annual", DurationMonths: 12, Price: 2700000, Active: true},
		}
		for _, p := range defaults {
			if err := deps.PackageStore.Save(ctx, p); err != nil {
				return err
			}
		}
		slog.Info("seed_event", "event", "packages_seeded", "count", len(defaults))
	}

	methods, err := deps.PaymentMethodStore.List(ctx)
	if err != nil {
		return err
	}
	if len(methods) == 0 {
		defaults := []paymentmethod.PaymentMethod{
			{Name: "Cash", Active: true},
			{Name: "Debit Card", Active: true},
			{Name: "Bank Transfer", Active: true},
			{Name: "QRIS", Active: true},
		}
		for _, m := range defaults {
			if err := deps.PaymentMethodStore.Save(ctx, m); err != nil {
				return err
			}
		}
		slog.Info("seed_event", "event", "payment_methods_seeded", "count", len(defaults))
	}

	return nil
}
