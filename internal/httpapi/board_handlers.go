package httpapi

import (
	"database/sql"
	"net/http"
	"sync/atomic"
	"time"

	"leadboard-engine/internal/board"
	"leadboard-engine/internal/config"
)

type BoardHandler struct {
	Store    LeadStore
	Snapshot *sql.DB
	CfgVal   *atomic.Value // stores config.Config
	Now      func() time.Time
}

func (h BoardHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h BoardHandler) policy() board.Policy {
	cfg := h.CfgVal.Load().(config.Config)
	return board.Policy{
		StaleDays:          cfg.Policy.StaleDays,
		FollowUpOffsetDays: cfg.Policy.FollowUpOffsetDays,
		HotLeadsLimit:      cfg.Policy.HotLeadsLimit,
	}
}

func (h BoardHandler) filterOpts(r *http.Request) board.FilterOpts {
	q := r.URL.Query()
	return board.FilterOpts{
		Industry: q.Get("industry"),
		Priority: q.Get("priority"),
		Status:   q.Get("status"),
	}
}

func (h BoardHandler) Kanban(w http.ResponseWriter, r *http.Request) {
	leads, stale, err := loadLeads(r.Context(), h.Store, h.Snapshot)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	filtered := board.Filter(leads, h.filterOpts(r))
	writeJSON(w, map[string]any{
		"columns": board.Kanban(filtered),
		"stale":   stale,
	})
}

func (h BoardHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	leads, stale, err := loadLeads(r.Context(), h.Store, h.Snapshot)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	filtered := board.Filter(leads, h.filterOpts(r))
	writeJSON(w, map[string]any{
		"events": board.Timeline(filtered, h.policy()),
		"stale":  stale,
	})
}

// Metrics always runs over the full table; the counter row ignores the
// sidebar filters, like the page always has.
func (h BoardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	leads, stale, err := loadLeads(r.Context(), h.Store, h.Snapshot)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{
		"metrics": board.ComputeMetrics(leads, h.policy(), h.now()),
		"stale":   stale,
	})
}

func (h BoardHandler) Insights(w http.ResponseWriter, r *http.Request) {
	leads, stale, err := loadLeads(r.Context(), h.Store, h.Snapshot)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	p := h.policy()
	writeJSON(w, map[string]any{
		"hotLeads":  board.HotLeads(leads, p),
		"followUps": board.FollowUps(leads, p, h.now()),
		"stale":     stale,
	})
}
