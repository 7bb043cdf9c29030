package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"forge/internal/adapter/sqlite"
	"forge/internal/domain"
	"forge/internal/store"
)

func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(sqlite.DriverSQLite, filepath.Join(t.TempDir(), "data", "forge.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRecordsLifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	key := domain.AccountKey("acct-1", domain.KindWorkouts)

	if _, err := db.Get(ctx, key); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Get missing: %v; want ErrNotFound", err)
	}
	if err := db.Put(ctx, key, []byte(`[]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := db.Put(ctx, key, []byte(`[{"id":9}]`)); err != nil {
		t.Fatalf("upsert Put: %v", err)
	}
	got, err := db.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `[{"id":9}]` {
		t.Errorf("Get = %s; want upserted value", got)
	}

	// Same kind, other account, is isolated.
	if _, err := db.Get(ctx, domain.AccountKey("acct-2", domain.KindWorkouts)); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("other account Get: %v; want ErrNotFound", err)
	}

	if err := db.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := db.Get(ctx, key); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get after Delete: %v; want ErrNotFound", err)
	}
}

func TestStoreOverSQLite(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	key := domain.AccountKey("acct-1", domain.KindRuns)

	store.NewLog[domain.Run](store.New(db), key).Set(ctx, []domain.Run{{ID: 1, Date: "2026-03-09", DistanceMeters: 5000}})
	got := store.NewLog[domain.Run](store.New(db), key).Get(ctx)
	if len(got) != 1 || got[0].DistanceMeters != 5000 {
		t.Errorf("reloaded = %v", got)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := sqlite.Open("mysql", "x"); err == nil {
		t.Error("expected error for unknown driver")
	}
}
