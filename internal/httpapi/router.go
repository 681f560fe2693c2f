package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs
// srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	hh := HealthHandler{Connected: func() bool { return d.Store != nil }}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Leads
	lh := LeadsHandler{Store: d.Store, Snapshot: d.Snapshot, Hub: d.Hub, CfgVal: d.CfgVal}
	mux.HandleFunc("/leads", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  lh.List,
		http.MethodPost: lh.Create,
	}))
	mux.HandleFunc("/leads/", lh.ByPath) // PATCH /leads/{row}, POST /leads/{row}/status

	// Derived views
	bh := BoardHandler{Store: d.Store, Snapshot: d.Snapshot, CfgVal: d.CfgVal}
	mux.HandleFunc("/board", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: bh.Kanban,
	}))
	mux.HandleFunc("/timeline", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: bh.Timeline,
	}))
	mux.HandleFunc("/metrics", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: bh.Metrics,
	}))
	mux.HandleFunc("/insights", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: bh.Insights,
	}))

	// Refresh
	rh := RefreshHandler{Store: d.Store, Snapshot: d.Snapshot, Hub: d.Hub, RefreshStatus: d.RefreshStatus}
	mux.HandleFunc("/refresh", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Run,
	}))
	mux.HandleFunc("/refresh/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Status,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/sheets", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetSheetsCredentials,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
