package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"leadboard-engine/internal/lead"
	"leadboard-engine/internal/store"
)

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "snapshot.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db.Pool); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func snapshotLead(row int, company string) lead.Lead {
	added := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	return lead.Lead{
		Row:         row,
		Priority:    "High",
		CompanyName: company,
		Industry:    "SaaS",
		Status:      "Applied",
		DateAdded:   &added,
		Notes:       "offsite interview",
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	if err := store.Migrate(db.Pool); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestLoadSnapshot_EmptyDatabase(t *testing.T) {
	db := openTestDB(t)

	_, _, ok, err := store.LoadSnapshot(context.Background(), db.Pool)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if ok {
		t.Error("fresh database reported a snapshot")
	}
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	fetchedAt := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	in := []lead.Lead{snapshotLead(0, "Alpha"), snapshotLead(1, "Beta")}

	if err := store.SaveSnapshot(ctx, db.Pool, in, fetchedAt); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	out, gotAt, ok, err := store.LoadSnapshot(ctx, db.Pool)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if !ok {
		t.Fatal("snapshot not found after save")
	}
	if !gotAt.Equal(fetchedAt) {
		t.Errorf("fetchedAt = %v, want %v", gotAt, fetchedAt)
	}
	if len(out) != 2 {
		t.Fatalf("got %d rows, want 2", len(out))
	}
	if out[0].CompanyName != "Alpha" || out[1].CompanyName != "Beta" {
		t.Errorf("row order lost: %q, %q", out[0].CompanyName, out[1].CompanyName)
	}
	if out[0].DateAdded == nil || !out[0].DateAdded.Equal(*in[0].DateAdded) {
		t.Errorf("date_added round trip: %v", out[0].DateAdded)
	}
	if out[0].LastAction != nil {
		t.Errorf("empty last_action came back as %v", out[0].LastAction)
	}
	if out[0].Notes != "offsite interview" {
		t.Errorf("notes = %q", out[0].Notes)
	}
}

func TestSaveSnapshot_ReplacesPrevious(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first := []lead.Lead{snapshotLead(0, "Alpha"), snapshotLead(1, "Beta"), snapshotLead(2, "Gamma")}
	if err := store.SaveSnapshot(ctx, db.Pool, first, time.Now()); err != nil {
		t.Fatal(err)
	}
	second := []lead.Lead{snapshotLead(0, "Delta")}
	if err := store.SaveSnapshot(ctx, db.Pool, second, time.Now()); err != nil {
		t.Fatal(err)
	}

	out, _, ok, err := store.LoadSnapshot(ctx, db.Pool)
	if err != nil || !ok {
		t.Fatalf("LoadSnapshot: ok=%v err=%v", ok, err)
	}
	if len(out) != 1 || out[0].CompanyName != "Delta" {
		t.Errorf("old rows survived the rewrite: %+v", out)
	}
}

func TestSaveSnapshot_EmptyLoadClearsRows(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := store.SaveSnapshot(ctx, db.Pool, []lead.Lead{snapshotLead(0, "Alpha")}, time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveSnapshot(ctx, db.Pool, nil, time.Now()); err != nil {
		t.Fatal(err)
	}

	out, _, ok, err := store.LoadSnapshot(ctx, db.Pool)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("meta row should survive an empty save")
	}
	if len(out) != 0 {
		t.Errorf("got %d rows after empty save, want 0", len(out))
	}
}
