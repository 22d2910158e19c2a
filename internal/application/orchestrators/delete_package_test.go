package orchestrators_test

import (
	"context"
	"testing"

	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/domain/catalog"
)

type fakeCatalogStore struct {
	packages map[int64]catalog.Package
	deleted  []int64
}

func (s *fakeCatalogStore) GetByID(_ context.Context, id int64) (catalog.Package, error) {
	p, ok := s.packages[id]
	if !ok {
		return catalog.Package{}, errFakeNotFound
	}
	return p, nil
}

func (s *fakeCatalogStore) Save(_ context.Context, p catalog.Package) error {
	s.packages[p.ID] = p
	return nil
}

func (s *fakeCatalogStore) Delete(_ context.Context, id int64) error {
	delete(s.packages, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type fakeUsageStore struct {
	counts map[int64]int
}

func (s *fakeUsageStore) CountByPackage(_ context.Context, packageID int64) (int, error) {
	return s.counts[packageID], nil
}

func TestDeletePackage(t *testing.T) {
	t.Run("unreferenced package is removed", func(t *testing.T) {
		store := &fakeCatalogStore{packages: map[int64]catalog.Package{
			10: {ID: 10, Name: "Monthly", DurationMonths: 1, Active: true},
		}}
		deps := orchestrators.DeletePackageDeps{
			PackageStore:     store,
			TransactionStore: &fakeUsageStore{counts: map[int64]int{}},
		}

		res, err := orchestrators.ExecuteDeletePackage(context.Background(), 10, deps)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Deactivated {
			t.Error("unreferenced package should be hard-deleted")
		}
		if len(store.deleted) != 1 {
			t.Errorf("deleted %v, want [10]", store.deleted)
		}
	})

	t.Run("referenced package is deactivated", func(t *testing.T) {
		store := &fakeCatalogStore{packages: map[int64]catalog.Package{
			10: {ID: 10, Name: "Monthly", DurationMonths: 1, Active: true},
		}}
		deps := orchestrators.DeletePackageDeps{
			PackageStore:     store,
			TransactionStore: &fakeUsageStore{counts: map[int64]int{10: 4}},
		}

		res, err := orchestrators.ExecuteDeletePackage(context.Background(), 10, deps)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Deactivated {
			t.Error("referenced package should be soft-deleted")
		}
		if got := store.packages[10]; got.Active {
			t.Error("package still active after deactivation")
		}
		if len(store.deleted) != 0 {
			t.Errorf("referenced package was hard-deleted: %v", store.deleted)
		}
	})
}
