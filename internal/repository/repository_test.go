package repository

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"smartinvoice/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&model.KVEntry{}, &model.Sequence{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestStore(t *testing.T) (InvoiceStore, KeyValueRepository) {
	db := newTestDB(t)
	kv := NewKeyValueRepository(db)
	return NewInvoiceStore(kv, NewTransactionManager(db)), kv
}

func testInvoice(id, number string) model.Invoice {
	inv := model.NewDefaultInvoice(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC))
	inv.ID = id
	inv.InvoiceNumber = number
	return inv
}

func TestKeyValueRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewKeyValueRepository(newTestDB(t))

	if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing error = %v, want ErrNotFound", err)
	}
	if err := kv.Put(ctx, "k", "one"); err != nil {
		t.Fatal(err)
	}
	if err := kv.Put(ctx, "k", "two"); err != nil {
		t.Fatal(err)
	}
	if v, err := kv.Get(ctx, "k"); err != nil || v != "two" {
		t.Fatalf("Get = %q, %v", v, err)
	}
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, err := kv.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete error = %v", err)
	}
}

func TestDraftMissingAndCorrupt(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)

	d, err := store.Draft(ctx)
	if err != nil || d != nil {
		t.Fatalf("missing draft = %v, %v", d, err)
	}

	if err := kv.Put(ctx, model.KeyDraft, "{not json"); err != nil {
		t.Fatal(err)
	}
	d, err = store.Draft(ctx)
	if err != nil || d != nil {
		t.Fatalf("corrupt draft = %v, %v; want nil, nil", d, err)
	}

	inv := testInvoice("a", "INV-001")
	if err := store.SaveDraft(ctx, inv); err != nil {
		t.Fatal(err)
	}
	d, err = store.Draft(ctx)
	if err != nil || d == nil || d.ID != "a" || len(d.Items) != len(inv.Items) {
		t.Fatalf("draft = %+v, %v", d, err)
	}
}

func TestPartialDraftKeepsDefaults(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)

	if err := kv.Put(ctx, model.KeyDraft, `{"id":"old","clientName":"Kedai Ali","senderSstNo":""}`); err != nil {
		t.Fatal(err)
	}
	d, err := store.Draft(ctx)
	if err != nil || d == nil {
		t.Fatalf("draft = %v, %v", d, err)
	}
	if d.ID != "old" || d.ClientName != "Kedai Ali" {
		t.Fatalf("stored fields lost: %+v", d)
	}
	if d.Currency != "MYR" || d.Notes != model.DefaultNotes || len(d.Items) == 0 || d.TaxRate.IntPart() != 6 {
		t.Fatalf("missing fields did not take defaults: currency=%q items=%d tax=%s", d.Currency, len(d.Items), d.TaxRate)
	}
	if d.SenderSstNo != "" {
		t.Fatalf("explicitly cleared SST number came back as %q", d.SenderSstNo)
	}

	if err := kv.Put(ctx, model.KeyDraft, `{"id":"empty","items":[]}`); err != nil {
		t.Fatal(err)
	}
	if d, _ = store.Draft(ctx); d == nil || len(d.Items) != 0 {
		t.Fatalf("explicit empty items must stay empty: %+v", d)
	}
}

func TestHistoryCorruptIsEmpty(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)
	if err := kv.Put(ctx, model.KeyHistory, `{"oops":`); err != nil {
		t.Fatal(err)
	}
	list, err := store.History(ctx)
	if err != nil || list == nil || len(list) != 0 {
		t.Fatalf("history = %v, %v", list, err)
	}

	// A write after corruption starts a fresh list.
	list, err = store.Upsert(ctx, testInvoice("a", "INV-001"))
	if err != nil || len(list) != 1 {
		t.Fatalf("upsert after corruption = %v, %v", list, err)
	}
}

func TestUpsertReplacesOrPrepends(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	for _, inv := range []model.Invoice{testInvoice("a", "INV-001"), testInvoice("b", "INV-002")} {
		if _, err := store.Upsert(ctx, inv); err != nil {
			t.Fatal(err)
		}
	}
	changed := testInvoice("a", "INV-001")
	changed.ClientName = "Apple"
	list, err := store.Upsert(ctx, changed)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != "b" || list[1].ID != "a" || list[1].ClientName != "Apple" {
		t.Fatalf("history order = %v", ids(list))
	}

	stored, err := store.History(ctx)
	if err != nil || len(stored) != 2 || stored[1].ClientName != "Apple" {
		t.Fatalf("persisted history = %v, %v", ids(stored), err)
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	for _, id := range []string{"a", "b", "c"} {
		if _, err := store.Upsert(ctx, testInvoice(id, "INV-"+id)); err != nil {
			t.Fatal(err)
		}
	}

	list, err := store.Delete(ctx, "b")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(ids(list), ","); got != "c,a" {
		t.Fatalf("after delete = %s", got)
	}
	if _, err := store.Delete(ctx, "b"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete error = %v, want ErrNotFound", err)
	}
	if _, err := store.Find(ctx, "b"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Find deleted error = %v", err)
	}
	if inv, err := store.Find(ctx, "c"); err != nil || inv.InvoiceNumber != "INV-c" {
		t.Fatalf("Find = %+v, %v", inv, err)
	}
}

func TestSequenceNextIsMonotonic(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seq := NewSequenceRepository(db, NewTransactionManager(db))

	for want := int64(1); want <= 3; want++ {
		got, err := seq.Next(ctx, model.SequenceInvoiceNumber)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("Next = %d, want %d", got, want)
		}
	}
	if got, _ := seq.Next(ctx, "other"); got != 1 {
		t.Fatalf("independent counter = %d, want 1", got)
	}
}

func TestSequenceNextConcurrent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seq := NewSequenceRepository(db, NewTransactionManager(db))

	const n = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[int64]bool{}
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := seq.Next(ctx, model.SequenceInvoiceNumber)
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			seen[v] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	if len(seen) != n {
		t.Fatalf("got %d distinct values, want %d", len(seen), n)
	}
}

func ids(list []model.Invoice) []string {
	out := make([]string, len(list))
	for i, inv := range list {
		out[i] = inv.ID
	}
	return out
}
