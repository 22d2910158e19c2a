package member_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"gymdesk/internal/adapters/storage"
	memberstore "gymdesk/internal/adapters/storage/member"
	domain "gymdesk/internal/domain/member"
	"gymdesk/internal/domain/transaction"

	_ "modernc.org/sqlite"
)

func newTestStore(t *testing.T) (*memberstore.SQLiteStore, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	// txn rows are FK-constrained to the catalog, so the package and
	// payment method referenced by sampleTxn must exist.
	if _, err := db.Exec("INSERT INTO package (name, duration_months, price, active) VALUES ('Monthly', 1, 300000, 1)"); err != nil {
		t.Fatalf("seed package failed: %v", err)
	}
	if _, err := db.Exec("INSERT INTO payment_method (name, active) VALUES ('Cash', 1)"); err != nil {
		t.Fatalf("seed payment method failed: %v", err)
	}
	return memberstore.NewSQLiteStore(db), db
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleMember(name, phone string) domain.Member {
	return domain.Member{
		Name:           name,
		Phone:          phone,
		MembershipType: "Monthly",
		StartDate:      date("2026-01-01"),
		EndDate:        date("2026-02-01"),
		CreatedAt:      time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func sampleTxn(id string) transaction.Transaction {
	return transaction.Transaction{
		ID:              id,
		PackageID:       1,
		PaymentMethodID: 1,
		Amount:          300000,
		CreatedAt:       time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreateWithTransactionAssignsNumber(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	n1, err := store.CreateWithTransaction(ctx, sampleMember("First", "0812-1"), sampleTxn("t-1"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	n2, err := store.CreateWithTransaction(ctx, sampleMember("Second", "0812-2"), sampleTxn("t-2"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if n1 != 1 || n2 != 2 {
		t.Errorf("got numbers %d, %d, want 1, 2", n1, n2)
	}

	got, err := store.GetByNumber(ctx, n1)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "First" || !got.StartDate.Equal(date("2026-01-01")) || !got.EndDate.Equal(date("2026-02-01")) {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestCreateWithTransactionIsAtomic(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.CreateWithTransaction(ctx, sampleMember("First", "0812-1"), sampleTxn("dup")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	// Duplicate transaction id makes the second insert fail after the
	// member row has been written inside the tx.
	if _, err := store.CreateWithTransaction(ctx, sampleMember("Second", "0812-2"), sampleTxn("dup")); err == nil {
		t.Fatal("expected duplicate transaction id to fail")
	}

	if _, err := store.GetByNumber(ctx, 2); err == nil {
		t.Error("member row survived a failed transaction insert")
	}
}

func TestCommitRenewalUpdatesDatesAndRecordsPayment(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	number, err := store.CreateWithTransaction(ctx, sampleMember("Renewing", "0812-1"), sampleTxn("t-1"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	txn := sampleTxn("t-renew")
	txn.MemberID = number
	err = store.CommitRenewal(ctx, number, date("2026-02-01"), date("2026-03-01"), "Monthly", txn)
	if err != nil {
		t.Fatalf("commit renewal failed: %v", err)
	}

	got, err := store.GetByNumber(ctx, number)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !got.StartDate.Equal(date("2026-02-01")) || !got.EndDate.Equal(date("2026-03-01")) {
		t.Errorf("dates not updated: %v .. %v", got.StartDate, got.EndDate)
	}
}

func TestCommitRenewalUnknownMember(t *testing.T) {
	store, _ := newTestStore(t)
	err := store.CommitRenewal(context.Background(), 99, date("2026-02-01"), date("2026-03-01"), "Monthly", sampleTxn("t-x"))
	if err == nil {
		t.Fatal("expected error for unknown member")
	}
}

func TestDeleteRemovesPaymentAndVisitHistory(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()

	number, err := store.CreateWithTransaction(ctx, sampleMember("Leaving", "0812-1"), sampleTxn("t-1"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := db.Exec(
		"INSERT INTO visit (id, member_id, method, check_in_time) VALUES (?, ?, ?, ?)",
		"v-1", number, "manual", "2026-01-02T09:00:00Z",
	); err != nil {
		t.Fatalf("insert visit failed: %v", err)
	}

	// The txn row from registration references the member by FK, so a
	// bare member delete would fail. Delete must take history with it.
	if err := store.Delete(ctx, number); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := store.GetByNumber(ctx, number); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("member still readable after delete: %v", err)
	}
	for _, table := range []string{"txn", "visit"} {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM "+table+" WHERE member_id = ?", number).Scan(&count); err != nil {
			t.Fatalf("count %s failed: %v", table, err)
		}
		if count != 0 {
			t.Errorf("%d %s rows survived the delete", count, table)
		}
	}
}

func TestDeleteUnknownMember(t *testing.T) {
	store, _ := newTestStore(t)
	if err := store.Delete(context.Background(), 99); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestFindByPhoneReturnsAllMatches(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	shared := "0812-7777"
	if _, err := store.CreateWithTransaction(ctx, sampleMember("Parent", shared), sampleTxn("t-1")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.CreateWithTransaction(ctx, sampleMember("Child", shared), sampleTxn("t-2")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.CreateWithTransaction(ctx, sampleMember("Other", "0812-8888"), sampleTxn("t-3")); err != nil {
		t.Fatal(err)
	}

	matches, err := store.FindByPhone(ctx, shared)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
}

func TestSearchByNameIsCaseInsensitive(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.CreateWithTransaction(ctx, sampleMember("Budi Santoso", "0812-1"), sampleTxn("t-1")); err != nil {
		t.Fatal(err)
	}

	matches, err := store.SearchByName(ctx, "budi", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
}

func TestListFiltersAndPaginates(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		if _, err := store.CreateWithTransaction(ctx, sampleMember(name, "0812-"+name), sampleTxn("t-"+name)); err != nil {
			t.Fatal(err)
		}
	}

	page, err := store.List(ctx, memberstore.ListFilter{Limit: 2, Sort: "name"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page) != 2 || page[0].Name != "Alpha" {
		t.Errorf("unexpected page: %v", page)
	}

	count, err := store.Count(ctx, memberstore.ListFilter{Search: "Bet"})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
