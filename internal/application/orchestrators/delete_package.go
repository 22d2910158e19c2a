package orchestrators

import (
	"context"
	"log/slog"

	"gymdesk/internal/domain/catalog"
)

// DeletePackageStore defines the package store interface needed for
// catalog deletion.
type DeletePackageStore interface {
	GetByID(ctx context.Context, id int64) (catalog.Package, error)
	Save(ctx context.Context, p catalog.Package) error
	Delete(ctx context.Context, id int64) error
}

// PackageUsageStore reports whether transaction history references a
// package.
type PackageUsageStore interface {
	CountByPackage(ctx context.Context, packageID int64) (int, error)
}

// DeletePackageDeps holds dependencies for DeletePackage.
type DeletePackageDeps struct {
	PackageStore     DeletePackageStore
	TransactionStore PackageUsageStore
}

// DeletePackageResult reports how the deletion was carried out.
type DeletePackageResult struct {
	Deactivated bool // true when history forced a soft-delete
}

// ExecuteDeletePackage removes a package from the catalog. Packages
// referenced by transaction history are deactivated instead of deleted,
// so past payments keep a valid reference.
// PRE: id identifies an existing package
// POST: Package hard-deleted, or Active=false when referenced
func ExecuteDeletePackage(ctx context.Context, id int64, deps DeletePackageDeps) (DeletePackageResult, error) {
	pkg, err := deps.PackageStore.GetByID(ctx, id)
	if err != nil {
		return DeletePackageResult{}, ErrPackageNotFound
	}

	refs, err := deps.TransactionStore.CountByPackage(ctx, id)
	if err != nil {
		return DeletePackageResult{}, err
	}

	if refs > 0 {
		if err := pkg.Deactivate(); err != nil {
			return DeletePackageResult{}, err
		}
		if err := deps.PackageStore.Save(ctx, pkg); err != nil {
			return DeletePackageResult{}, err
		}
		slog.Info("catalog_event", "event", "package_deactivated", "package_id", id, "transaction_refs", refs)
		return DeletePackageResult{Deactivated: true}, nil
	}

	if err := deps.PackageStore.Delete(ctx, id); err != nil {
		return DeletePackageResult{}, err
	}
	slog.Info("catalog_event", "event", "package_deleted", "package_id", id)
	return DeletePackageResult{}, nil
}
