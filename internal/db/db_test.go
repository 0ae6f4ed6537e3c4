package db

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/marcus/clinic/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestOpenCreatesFile(t *testing.T) {
	dir := t.TempDir()
	database, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	if _, err := os.Stat(filepath.Join(dir, dbFile)); err != nil {
		t.Fatalf("expected db file: %v", err)
	}
	v, err := database.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != schemaVersion {
		t.Errorf("SchemaVersion: got %d, want %d", v, schemaVersion)
	}
	if database.BaseDir() != dir {
		t.Errorf("BaseDir: got %q, want %q", database.BaseDir(), dir)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	database, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := database.ReplaceDoctors([]models.Doctor{{ID: 1, Name: "Miranda Bailey"}}, time.Now()); err != nil {
		t.Fatalf("ReplaceDoctors: %v", err)
	}
	database.Close()

	database, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer database.Close()

	doctors, err := database.ListDoctors()
	if err != nil {
		t.Fatalf("ListDoctors: %v", err)
	}
	if len(doctors) != 1 || doctors[0].Name != "Miranda Bailey" {
		t.Errorf("unexpected doctors after reopen: %+v", doctors)
	}
}

func TestReplaceAndListDoctors(t *testing.T) {
	database := openTestDB(t)
	synced := time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

	doctors := []models.Doctor{
		{ID: 2, Name: "gregory House", Specialty: "Diagnostics", Email: "house@ppth.org", Phone: "5550001111",
			AvailableTimes: []string{"09:00-10:00", "14:00-15:00"}},
		{ID: 1, Name: "Allison Cameron", Specialty: "Immunology"},
	}
	if err := database.ReplaceDoctors(doctors, synced); err != nil {
		t.Fatalf("ReplaceDoctors: %v", err)
	}

	got, err := database.ListDoctors()
	if err != nil {
		t.Fatalf("ListDoctors: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 doctors, got %d", len(got))
	}
	// Case-insensitive name order
	if got[0].Name != "Allison Cameron" || got[1].Name != "gregory House" {
		t.Errorf("unexpected order: %q, %q", got[0].Name, got[1].Name)
	}
	if got[0].AvailableTimes != nil {
		t.Errorf("expected nil times for Cameron, got %v", got[0].AvailableTimes)
	}
	if len(got[1].AvailableTimes) != 2 || got[1].AvailableTimes[1] != "14:00-15:00" {
		t.Errorf("AvailableTimes: got %v", got[1].AvailableTimes)
	}
	if !got[1].SyncedAt.Equal(synced) {
		t.Errorf("SyncedAt: got %v, want %v", got[1].SyncedAt, synced)
	}

	last, err := database.LastSync()
	if err != nil {
		t.Fatalf("LastSync: %v", err)
	}
	if !last.Equal(synced) {
		t.Errorf("LastSync: got %v, want %v", last, synced)
	}

	// A second replace drops rows that are gone upstream
	if err := database.ReplaceDoctors(doctors[:1], synced.Add(time.Hour)); err != nil {
		t.Fatalf("ReplaceDoctors (second): %v", err)
	}
	got, _ = database.ListDoctors()
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("expected only doctor 2, got %+v", got)
	}
}

func TestLastSyncNeverSynced(t *testing.T) {
	database := openTestDB(t)
	last, err := database.LastSync()
	if err != nil {
		t.Fatalf("LastSync: %v", err)
	}
	if !last.IsZero() {
		t.Errorf("expected zero time, got %v", last)
	}
}

func TestDeleteDoctor(t *testing.T) {
	database := openTestDB(t)
	if err := database.ReplaceDoctors([]models.Doctor{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}, time.Now()); err != nil {
		t.Fatalf("ReplaceDoctors: %v", err)
	}
	if err := database.DeleteDoctor(1); err != nil {
		t.Fatalf("DeleteDoctor: %v", err)
	}
	got, _ := database.ListDoctors()
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("expected only doctor 2, got %+v", got)
	}
}
