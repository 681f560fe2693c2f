package httpapi

import (
	"database/sql"
	"net/http"
	"sync/atomic"
	"time"

	"leadboard-engine/internal/events"
	"leadboard-engine/internal/poll"
	"leadboard-engine/internal/store"
)

type RefreshHandler struct {
	Store         LeadStore
	Snapshot      *sql.DB
	Hub           *events.Hub
	RefreshStatus *atomic.Value // stores poll.RefreshStatus
}

func (h RefreshHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := poll.RefreshStatus{}
	if v := h.RefreshStatus.Load(); v != nil {
		st = v.(poll.RefreshStatus)
	}
	writeJSON(w, st)
}

// Run is the "Refresh Data" button: drop the cache, pull fresh rows,
// tell every open page.
func (h RefreshHandler) Run(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		WriteError(w, r, http.StatusBadGateway, "backend_unreachable", errNotConnected.Error())
		return
	}

	h.Store.Invalidate()
	leads, err := h.Store.Reload(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	if h.Snapshot != nil {
		// best effort; stale snapshot beats no snapshot
		_ = store.SaveSnapshot(r.Context(), h.Snapshot, leads, time.Now())
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeDataRefreshed, 1, map[string]any{"rows": len(leads)}))
	writeJSON(w, map[string]any{"ok": true, "rows": len(leads)})
}
