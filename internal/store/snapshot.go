package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"leadboard-engine/internal/lead"
)

// SaveSnapshot replaces the stored rows with the given load, all in one
// transaction so a crash mid-write can't leave a half snapshot.
func SaveSnapshot(ctx context.Context, db *sql.DB, leads []lead.Lead, fetchedAt time.Time) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM lead_snapshot;`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	for _, l := range leads {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO lead_snapshot (row_index, priority, company_name, industry, type, location,
  job_link, website, contact_role, status, date_added, last_action, notes)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?);`,
			l.Row, l.Priority, l.CompanyName, l.Industry, l.Type, l.Location,
			l.JobLink, l.Website, l.ContactRole, l.Status,
			lead.FormatDate(l.DateAdded), lead.FormatDate(l.LastAction), l.Notes,
		); err != nil {
			return fmt.Errorf("insert snapshot row %d: %w", l.Row, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
INSERT OR REPLACE INTO snapshot_meta(id, fetched_at) VALUES (1, ?);`,
		fetchedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("snapshot meta: %w", err)
	}

	return tx.Commit()
}

// LoadSnapshot returns the last stored rows and when they were fetched.
// A database with no snapshot yet returns ok=false.
func LoadSnapshot(ctx context.Context, db *sql.DB) (leads []lead.Lead, fetchedAt time.Time, ok bool, err error) {
	var fetchedStr string
	e := db.QueryRowContext(ctx, `SELECT fetched_at FROM snapshot_meta WHERE id = 1;`).Scan(&fetchedStr)
	if e == sql.ErrNoRows {
		return nil, time.Time{}, false, nil
	}
	if e != nil {
		return nil, time.Time{}, false, e
	}
	fetchedAt, _ = time.Parse(time.RFC3339, fetchedStr)

	rows, err := db.QueryContext(ctx, `
SELECT row_index, priority, company_name, industry, type, location,
       job_link, website, contact_role, status, date_added, last_action, notes
FROM lead_snapshot
ORDER BY row_index;`)
	if err != nil {
		return nil, time.Time{}, false, err
	}
	defer rows.Close()

	out := make([]lead.Lead, 0)
	for rows.Next() {
		var l lead.Lead
		var added, action string
		if err := rows.Scan(
			&l.Row, &l.Priority, &l.CompanyName, &l.Industry, &l.Type, &l.Location,
			&l.JobLink, &l.Website, &l.ContactRole, &l.Status, &added, &action, &l.Notes,
		); err != nil {
			return nil, time.Time{}, false, err
		}
		l.DateAdded = lead.ParseDate(added)
		l.LastAction = lead.ParseDate(action)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, false, err
	}
	return out, fetchedAt, true, nil
}
