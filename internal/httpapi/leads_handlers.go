package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"leadboard-engine/internal/board"
	"leadboard-engine/internal/config"
	"leadboard-engine/internal/events"
	"leadboard-engine/internal/lead"
)

type LeadsHandler struct {
	Store    LeadStore
	Snapshot *sql.DB
	Hub      *events.Hub
	CfgVal   *atomic.Value // stores config.Config
	Now      func() time.Time
}

func (h LeadsHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h LeadsHandler) cfg() config.Config {
	return h.CfgVal.Load().(config.Config)
}

type listLeadsResponse struct {
	Leads      []lead.Lead `json:"leads"`
	Industries []string    `json:"industries"`
	Stale      bool        `json:"stale"`
}

func (h LeadsHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, stale, err := loadLeads(r.Context(), h.Store, h.Snapshot)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	q := r.URL.Query()
	filtered := board.Filter(leads, board.FilterOpts{
		Industry: q.Get("industry"),
		Priority: q.Get("priority"),
		Status:   q.Get("status"),
	})

	writeJSON(w, listLeadsResponse{
		Leads:      filtered,
		Industries: board.Industries(leads),
		Stale:      stale,
	})
}

type createLeadReq struct {
	Priority    string `json:"priority"`
	CompanyName string `json:"companyName"`
	Industry    string `json:"industry"`
	Type        string `json:"type"`
	Location    string `json:"location"`
	JobLink     string `json:"jobLink"`
	Website     string `json:"website"`
	ContactRole string `json:"contactRole"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

// Create handles the add-company form. DateAdded is stamped here and
// never changes afterwards; LastAction starts empty.
func (h LeadsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		WriteError(w, r, http.StatusBadGateway, "backend_unreachable", errNotConnected.Error())
		return
	}

	var req createLeadReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	if strings.TrimSpace(req.CompanyName) == "" {
		WriteError(w, r, http.StatusBadRequest, "company_required", "company name is required")
		return
	}
	if req.Priority != "" {
		if _, err := lead.ParsePriority(req.Priority); err != nil {
			WriteError(w, r, http.StatusBadRequest, "invalid_priority", err.Error())
			return
		}
	}
	if req.Type != "" {
		if _, err := lead.ParseType(req.Type); err != nil {
			WriteError(w, r, http.StatusBadRequest, "invalid_type", err.Error())
			return
		}
	}

	cfg := h.cfg()
	status := req.Status
	if status == "" && len(cfg.Policy.NewStatuses) > 0 {
		status = cfg.Policy.NewStatuses[0]
	}
	if !allowedNewStatus(cfg, status) {
		WriteError(w, r, http.StatusBadRequest, "invalid_status",
			"new leads must start in one of: "+strings.Join(cfg.Policy.NewStatuses, ", "))
		return
	}

	today := h.now()
	l := lead.Lead{
		Priority:    req.Priority,
		CompanyName: strings.TrimSpace(req.CompanyName),
		Industry:    req.Industry,
		Type:        req.Type,
		Location:    req.Location,
		JobLink:     req.JobLink,
		Website:     req.Website,
		ContactRole: req.ContactRole,
		Status:      status,
		DateAdded:   &today,
		Notes:       req.Notes,
	}

	if err := h.Store.AppendRow(r.Context(), l.Values()); err != nil {
		writeStoreError(w, r, err)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeLeadAdded, 1, map[string]any{"company": l.CompanyName}))
	writeJSON(w, map[string]any{"ok": true, "lead": l})
}

func allowedNewStatus(cfg config.Config, status string) bool {
	for _, s := range cfg.Policy.NewStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type updateFieldReq struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type setStatusReq struct {
	Status string `json:"status"`
}

// ByPath routes /leads/{row} and /leads/{row}/status.
func (h LeadsHandler) ByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/leads/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	row, err := strconv.Atoi(parts[0])
	if err != nil || row < 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_row", "invalid row index")
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodPatch:
		h.updateField(w, r, row)
	case len(parts) == 2 && parts[1] == "status" && r.Method == http.MethodPost:
		h.setStatus(w, r, row)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h LeadsHandler) checkRow(w http.ResponseWriter, r *http.Request, row int) bool {
	if h.Store == nil {
		WriteError(w, r, http.StatusBadGateway, "backend_unreachable", errNotConnected.Error())
		return false
	}
	leads, err := h.Store.LoadAll(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return false
	}
	if row >= len(leads) {
		WriteError(w, r, http.StatusNotFound, "row_not_found", "row index past end of table")
		return false
	}
	return true
}

func (h LeadsHandler) updateField(w http.ResponseWriter, r *http.Request, row int) {
	var req updateFieldReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if !h.checkRow(w, r, row) {
		return
	}

	if err := h.Store.UpdateField(r.Context(), row, req.Field, req.Value); err != nil {
		writeStoreError(w, r, err)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeLeadUpdated, 1, map[string]any{"row": row, "field": req.Field}))
	writeJSON(w, map[string]any{"ok": true, "row": row})
}

// setStatus is the kanban card move: the status cell changes and
// LastAction is stamped with today, same as editing both by hand.
func (h LeadsHandler) setStatus(w http.ResponseWriter, r *http.Request, row int) {
	var req setStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if _, err := lead.ParseStatus(req.Status); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_status", err.Error())
		return
	}
	if !h.checkRow(w, r, row) {
		return
	}

	if err := h.Store.UpdateField(r.Context(), row, lead.FieldStatus, req.Status); err != nil {
		writeStoreError(w, r, err)
		return
	}
	if err := h.Store.UpdateField(r.Context(), row, lead.FieldLastAction, h.now().Format(lead.DateLayout)); err != nil {
		writeStoreError(w, r, err)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeLeadUpdated, 1, map[string]any{"row": row, "status": req.Status}))
	writeJSON(w, map[string]any{"ok": true, "row": row, "status": req.Status})
}
