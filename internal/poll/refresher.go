// Package poll keeps the engine's view of the sheet warm: it re-fetches
// on a timer so external edits (someone typing into the spreadsheet
// directly) show up without a user-triggered refresh.
package poll

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"leadboard-engine/internal/events"
	"leadboard-engine/internal/lead"
	"leadboard-engine/internal/scheduler"
	"leadboard-engine/internal/store"
)

// LeadSource is what the refresher needs from the sheet store.
type LeadSource interface {
	Reload(ctx context.Context) ([]lead.Lead, error)
}

type RefreshStatus struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	Rows      int    `json:"rows"`
	Running   bool   `json:"running"`
}

// fingerprint detects whether the table actually changed between loads
// so we only wake the UI when there is something new to render.
func fingerprint(leads []lead.Lead) [32]byte {
	b, _ := json.Marshal(leads)
	return sha256.Sum256(b)
}

// StartRefresher blocks until ctx is done; run it in its own goroutine.
func StartRefresher(ctx context.Context, interval time.Duration, src LeadSource, db *sql.DB, status *atomic.Value, hub *events.Hub) {
	var last [32]byte
	var haveLast bool

	scheduler.Every(ctx, interval, "refresh", func(ctx context.Context) error {
		st := RefreshStatus{}
		if prev := status.Load(); prev != nil {
			st = prev.(RefreshStatus)
		}
		st.Running = true
		st.LastRunAt = time.Now().Format(time.RFC3339)
		status.Store(st)

		leads, err := src.Reload(ctx)

		st.Running = false
		if err != nil {
			st.LastError = err.Error()
			status.Store(st)
			return err
		}
		st.LastError = ""
		st.LastOkAt = time.Now().Format(time.RFC3339)
		st.Rows = len(leads)
		status.Store(st)

		if db != nil {
			if err := store.SaveSnapshot(ctx, db, leads, time.Now()); err != nil {
				log.Printf("[refresh] snapshot save failed: %v", err)
			}
		}

		fp := fingerprint(leads)
		if haveLast && fp == last {
			return nil
		}
		changed := haveLast
		last, haveLast = fp, true
		if changed {
			hub.Publish(events.MakeEvent("", events.TypeDataRefreshed, 1, map[string]any{"rows": len(leads)}))
		}
		return nil
	})
}
