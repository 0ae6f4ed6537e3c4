package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/marcus/clinic/internal/models"
)

const lastSyncKey = "doctors_synced_at"

// ReplaceDoctors swaps the cached directory for a fresh listing
func (db *DB) ReplaceDoctors(doctors []models.Doctor, syncedAt time.Time) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM doctors`); err != nil {
		return fmt.Errorf("clear doctors: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO doctors (id, name, specialty, email, phone, available_times, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	ts := syncedAt.UTC().Format(time.RFC3339)
	for _, d := range doctors {
		times, err := json.Marshal(nonNil(d.AvailableTimes))
		if err != nil {
			return fmt.Errorf("encode times for doctor %d: %w", d.ID, err)
		}
		if _, err := stmt.Exec(d.ID, d.Name, d.Specialty, d.Email, d.Phone, string(times), ts); err != nil {
			return fmt.Errorf("insert doctor %d: %w", d.ID, err)
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		lastSyncKey, ts,
	); err != nil {
		return fmt.Errorf("record sync time: %w", err)
	}

	return tx.Commit()
}

// ListDoctors returns the cached directory ordered by name
func (db *DB) ListDoctors() ([]models.CachedDoctor, error) {
	rows, err := db.conn.Query(`SELECT id, name, specialty, email, phone, available_times, synced_at
		FROM doctors ORDER BY name COLLATE NOCASE, id`)
	if err != nil {
		return nil, fmt.Errorf("query doctors: %w", err)
	}
	defer rows.Close()

	var out []models.CachedDoctor
	for rows.Next() {
		var (
			d      models.CachedDoctor
			times  string
			synced string
		)
		if err := rows.Scan(&d.ID, &d.Name, &d.Specialty, &d.Email, &d.Phone, &times, &synced); err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		if err := json.Unmarshal([]byte(times), &d.AvailableTimes); err != nil {
			return nil, fmt.Errorf("decode times for doctor %d: %w", d.ID, err)
		}
		if len(d.AvailableTimes) == 0 {
			d.AvailableTimes = nil
		}
		d.SyncedAt, _ = time.Parse(time.RFC3339, synced)
		out = append(out, d)
	}
	return out, rows.Err()
}

// DeleteDoctor drops a doctor from the cache after a successful remote delete
func (db *DB) DeleteDoctor(id int64) error {
	if _, err := db.conn.Exec(`DELETE FROM doctors WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete doctor %d: %w", id, err)
	}
	return nil
}

// LastSync returns when the directory was last refreshed; zero if never
func (db *DB) LastSync() (time.Time, error) {
	var v string
	err := db.conn.QueryRow(`SELECT value FROM meta WHERE key = ?`, lastSyncKey).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, v)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
