package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"leadboard-engine/internal/lead"
	"leadboard-engine/internal/store"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	_ = enc.Encode(v)
}

func methodMux(m map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := m[r.Method]; ok {
			h(w, r)
			return
		}
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

var errNotConnected = errors.New("sheet store not connected")

// loadLeads serves reads: live data when the backend answers, the local
// snapshot when it doesn't. stale=true tells the page it is looking at
// old rows.
func loadLeads(ctx context.Context, st LeadStore, db *sql.DB) (leads []lead.Lead, stale bool, err error) {
	if st != nil {
		leads, err = st.LoadAll(ctx)
		if err == nil {
			return leads, false, nil
		}
	} else {
		err = errNotConnected
	}

	if db != nil {
		if snap, _, ok, serr := store.LoadSnapshot(ctx, db); serr == nil && ok {
			return snap, true, nil
		}
	}
	return nil, false, err
}
